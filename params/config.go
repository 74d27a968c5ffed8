// Package params loads and serves the TOML configuration.
package params

import (
	"encoding/json"

	"github.com/BurntSushi/toml"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/common"
	"github.com/chainflow/bridge-router/log"
	"github.com/chainflow/bridge-router/registry"
)

var (
	bridgeConfig = &BridgeConfig{}
	configFile   string
	locDataDir   string
)

// BridgeConfig config
type BridgeConfig struct {
	Identifier string
	Server     *ServerConfig `toml:",omitempty" json:",omitempty"`

	Gateways    map[string][]string // key is chain ID
	RPCTimeouts map[string]int      `toml:",omitempty" json:",omitempty"` // seconds, key is chain ID

	Prices  map[string]float64 `toml:",omitempty" json:",omitempty"` // native USD price, key is chain ID
	Tracker *TrackerConfig     `toml:",omitempty" json:",omitempty"`

	FeeOverrides []*FeeOverrideConfig `toml:",omitempty" json:",omitempty"`
	Deployments  []*DeploymentConfig  `toml:",omitempty" json:",omitempty"`
}

// ServerConfig only for the api server
type ServerConfig struct {
	APIServer *APIServerConfig
	MongoDB   *MongoDBConfig `toml:",omitempty" json:",omitempty"`
}

// APIServerConfig api service config
type APIServerConfig struct {
	Port             int
	AllowedOrigins   []string
	MaxRequestsLimit int `toml:",omitempty" json:",omitempty"`
}

// MongoDBConfig mongodb config
type MongoDBConfig struct {
	DBURL    string
	DBName   string
	UserName string `json:"-"`
	Password string `json:"-"`
}

// TrackerConfig transfer tracker tunables
type TrackerConfig struct {
	RequiredConfirmations uint64 `toml:",omitempty" json:",omitempty"`
	RecentBlockWindow     uint64 `toml:",omitempty" json:",omitempty"`
}

// FeeOverrideConfig route specific protocol fee override
type FeeOverrideConfig struct {
	Source     string
	Target     string
	Protocol   string
	Base       float64
	Percentage float64
}

// DeploymentConfig bridge deployment override. An empty or zero address
// removes the catalog entry (means "not deployed").
type DeploymentConfig struct {
	Source   string
	Target   string
	Protocol string
	Address  string
}

// GetConfig get bridge config
func GetConfig() *BridgeConfig {
	return bridgeConfig
}

// GetServerConfig get server config
func GetServerConfig() *ServerConfig {
	return bridgeConfig.Server
}

// GetAPIServerConfig get api server config
func GetAPIServerConfig() *APIServerConfig {
	if bridgeConfig.Server == nil {
		return nil
	}
	return bridgeConfig.Server.APIServer
}

// GetMongoDBConfig get mongodb config (nil means archive disabled)
func GetMongoDBConfig() *MongoDBConfig {
	if bridgeConfig.Server == nil {
		return nil
	}
	return bridgeConfig.Server.MongoDB
}

// GetIdentifier get identifier
func GetIdentifier() string {
	return bridgeConfig.Identifier
}

// GetGateways get gateway urls per chain
func GetGateways() map[string][]string {
	return bridgeConfig.Gateways
}

// GetRPCTimeouts get rpc timeouts per chain (seconds)
func GetRPCTimeouts() map[string]int {
	return bridgeConfig.RPCTimeouts
}

// GetPriceOverrides get native token USD price overrides per chain
func GetPriceOverrides() map[string]float64 {
	return bridgeConfig.Prices
}

// GetTrackerConfig get tracker config (may be nil)
func GetTrackerConfig() *TrackerConfig {
	return bridgeConfig.Tracker
}

// ApplyRegistryOverrides apply configured fee and deployment overrides to
// the registry catalog
func ApplyRegistryOverrides(reg *registry.Registry) {
	for _, fo := range bridgeConfig.FeeOverrides {
		reg.SetFeeOverride(
			bridge.ChainID(fo.Source), bridge.ChainID(fo.Target),
			bridge.ProtocolID(fo.Protocol),
			registry.FeeStructure{Base: fo.Base, Percentage: fo.Percentage},
		)
	}
	for _, dp := range bridgeConfig.Deployments {
		reg.SetDeployment(
			bridge.ChainID(dp.Source), bridge.ChainID(dp.Target),
			bridge.ProtocolID(dp.Protocol),
			common.HexToAddress(dp.Address),
		)
		log.Info("apply deployment override", "source", dp.Source, "target", dp.Target, "protocol", dp.Protocol, "address", dp.Address)
	}
}

// LoadConfig load config file. Exits the process on any error, a bridge
// router with a broken config must not come up half configured.
func LoadConfig(cfgFile string, isServer bool) *BridgeConfig {
	if cfgFile == "" {
		log.Fatal("must specify config file")
	}
	log.Info("load config file", "configFile", cfgFile, "isServer", isServer)
	if !common.FileExist(cfgFile) {
		log.Fatalf("LoadConfig error: config file '%v' not exist", cfgFile)
	}
	config := &BridgeConfig{}
	if _, err := toml.DecodeFile(cfgFile, &config); err != nil {
		log.Fatalf("LoadConfig error (toml DecodeFile): %v", err)
	}

	if !isServer {
		config.Server = nil
	}

	bridgeConfig = config
	configFile = cfgFile

	var bs []byte
	if log.JSONFormat {
		bs, _ = json.Marshal(config)
	} else {
		bs, _ = json.MarshalIndent(config, "", "  ")
	}
	log.Println("LoadConfig finished.", string(bs))

	if err := config.CheckConfig(isServer); err != nil {
		log.Fatalf("Check config failed. %v", err)
	}

	return bridgeConfig
}

// ReloadConfig reload the already loaded config file, keeping the old
// config on any error
func ReloadConfig(isServer bool) (*BridgeConfig, error) {
	config := &BridgeConfig{}
	if _, err := toml.DecodeFile(configFile, &config); err != nil {
		return nil, err
	}
	if !isServer {
		config.Server = nil
	}
	if err := config.CheckConfig(isServer); err != nil {
		return nil, err
	}
	bridgeConfig = config
	return bridgeConfig, nil
}

// ConfigFile the loaded config file path
func ConfigFile() string {
	return configFile
}

// SetDataDir set data dir
func SetDataDir(dir string) {
	if dir == "" {
		return
	}
	currDir, err := common.CurrentDir()
	if err != nil {
		log.Fatal("get current dir failed", "err", err)
	}
	locDataDir = common.AbsolutePath(currDir, dir)
	log.Info("set data dir success", "datadir", locDataDir)
}

// GetDataDir get data dir
func GetDataDir() string {
	return locDataDir
}
