package registry

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/common"
)

func chainSet(chains ...bridge.ChainID) mapset.Set {
	s := mapset.NewSet()
	for _, c := range chains {
		s.Add(c)
	}
	return s
}

func assetSet(assets ...string) mapset.Set {
	s := mapset.NewSet()
	for _, a := range assets {
		s.Add(a)
	}
	return s
}

// defaultEdges is the built-in bridge catalog. Order is fixed and is the
// discovery order used by the planner, so keep canonical edges first.
var defaultEdges = []*bridge.BridgeEdge{
	{
		Protocol:        bridge.ProtocolCanonical,
		Chains:          chainSet(bridge.ChainEthereum, bridge.ChainArbitrum),
		SupportedAssets: assetSet("ETH", "WETH", "USDC", "USDT", "DAI"),
		Speed:           bridge.SpeedSlow,
		Security:        bridge.SecurityCanonical,
		Liquidity:       bridge.LiquidityHigh,
		EstimatedTime:   "15 minutes in, up to 7 days out",
		FeePercent:      0.05,
	},
	{
		Protocol:        bridge.ProtocolCanonical,
		Chains:          chainSet(bridge.ChainEthereum, bridge.ChainOptimism),
		SupportedAssets: assetSet("ETH", "WETH", "USDC", "USDT", "DAI"),
		Speed:           bridge.SpeedSlow,
		Security:        bridge.SecurityCanonical,
		Liquidity:       bridge.LiquidityHigh,
		EstimatedTime:   "a few minutes in, up to 7 days out",
		FeePercent:      0.05,
	},
	{
		Protocol:        bridge.ProtocolCanonical,
		Chains:          chainSet(bridge.ChainEthereum, bridge.ChainBase),
		SupportedAssets: assetSet("ETH", "WETH", "USDC", "DAI"),
		Speed:           bridge.SpeedSlow,
		Security:        bridge.SecurityCanonical,
		Liquidity:       bridge.LiquidityHigh,
		EstimatedTime:   "a few minutes in, up to 7 days out",
		FeePercent:      0.05,
	},
	{
		Protocol:        bridge.ProtocolCanonical,
		Chains:          chainSet(bridge.ChainEthereum, bridge.ChainPolygon),
		SupportedAssets: assetSet("ETH", "WETH", "USDC", "USDT", "DAI", "POL"),
		Speed:           bridge.SpeedStandard,
		Security:        bridge.SecurityCanonical,
		Liquidity:       bridge.LiquidityHigh,
		EstimatedTime:   "20-30 minutes in, 1-3 hours out",
		FeePercent:      0.05,
	},
	{
		Protocol:        bridge.ProtocolHop,
		Chains:          chainSet(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ChainOptimism, bridge.ChainBase, bridge.ChainPolygon),
		SupportedAssets: assetSet("ETH", "USDC", "USDT", "DAI"),
		Speed:           bridge.SpeedFast,
		Security:        bridge.SecurityThirdParty,
		Liquidity:       bridge.LiquidityMedium,
		EstimatedTime:   "5-15 minutes",
		FeePercent:      0.25,
	},
	{
		Protocol:        bridge.ProtocolStargate,
		Chains:          chainSet(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ChainOptimism, bridge.ChainBase, bridge.ChainPolygon, bridge.ChainAvalanche, bridge.ChainBSC),
		SupportedAssets: assetSet("ETH", "USDC", "USDT"),
		Speed:           bridge.SpeedFast,
		Security:        bridge.SecurityThirdParty,
		Liquidity:       bridge.LiquidityHigh,
		EstimatedTime:   "1-5 minutes",
		FeePercent:      0.3,
	},
	{
		Protocol:        bridge.ProtocolAcross,
		Chains:          chainSet(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ChainOptimism, bridge.ChainBase, bridge.ChainPolygon),
		SupportedAssets: assetSet("ETH", "WETH", "USDC"),
		Speed:           bridge.SpeedInstant,
		Security:        bridge.SecurityOptimistic,
		Liquidity:       bridge.LiquidityMedium,
		EstimatedTime:   "1-4 minutes",
		FeePercent:      0.12,
	},
	{
		Protocol:        bridge.ProtocolSynapse,
		Chains:          chainSet(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ChainOptimism, bridge.ChainPolygon, bridge.ChainAvalanche, bridge.ChainBSC),
		SupportedAssets: assetSet("USDC", "USDT", "nUSD"),
		Speed:           bridge.SpeedFast,
		Security:        bridge.SecurityThirdParty,
		Liquidity:       bridge.LiquidityMedium,
		EstimatedTime:   "2-10 minutes",
		FeePercent:      0.2,
	},
	{
		Protocol:        bridge.ProtocolCeler,
		Chains:          chainSet(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ChainOptimism, bridge.ChainPolygon, bridge.ChainAvalanche, bridge.ChainBSC),
		SupportedAssets: assetSet("ETH", "WETH", "USDC", "USDT"),
		Speed:           bridge.SpeedFast,
		Security:        bridge.SecurityThirdParty,
		Liquidity:       bridge.LiquidityMedium,
		EstimatedTime:   "5-20 minutes",
		FeePercent:      0.15,
	},
}

// DeploymentKey identifies one protocol deployment usable for a specific
// directed chain pair. Absence of an entry means "not deployed on this
// pair", which excludes the edge from lookups. There is no zero-address
// sentinel: a deployment either exists with a real address or is absent.
type DeploymentKey struct {
	Source   bridge.ChainID
	Target   bridge.ChainID
	Protocol bridge.ProtocolID
}

func dk(source, target bridge.ChainID, protocol bridge.ProtocolID) DeploymentKey {
	return DeploymentKey{Source: source, Target: target, Protocol: protocol}
}

func addr(s string) common.Address { return common.HexToAddress(s) }

// defaultDeployments lists the bridge entry contract on the source chain
// for each directed pair. Pairs without an entry are not deployed.
// Deployments are directed: some protocols support only one direction on
// test networks, which is why findRoutes(A,B) and findRoutes(B,A) may
// legitimately differ.
var defaultDeployments = map[DeploymentKey]common.Address{
	// canonical rollup bridges (both directions)
	dk(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ProtocolCanonical): addr("0xcE18836b233C83325Cc8848CA4487e94C6288264"),
	dk(bridge.ChainArbitrum, bridge.ChainEthereum, bridge.ProtocolCanonical): addr("0x0000000000000000000000000000000000000064"),
	dk(bridge.ChainEthereum, bridge.ChainOptimism, bridge.ProtocolCanonical): addr("0xFBb0621E0B23b5478B630BD55a5f21f67730B0F1"),
	dk(bridge.ChainOptimism, bridge.ChainEthereum, bridge.ProtocolCanonical): addr("0x4200000000000000000000000000000000000010"),
	dk(bridge.ChainEthereum, bridge.ChainBase, bridge.ProtocolCanonical):     addr("0xfd0Bf71F60660E2f608ed56e1659C450eB113120"),
	dk(bridge.ChainBase, bridge.ChainEthereum, bridge.ProtocolCanonical):     addr("0x4200000000000000000000000000000000000010"),
	dk(bridge.ChainEthereum, bridge.ChainPolygon, bridge.ProtocolCanonical):  addr("0x34F5A25B627f50Bb3f5cAb72807c4D4F405a9232"),
	dk(bridge.ChainPolygon, bridge.ChainEthereum, bridge.ProtocolCanonical):  addr("0x52eF3d68BaB452a294342DC3e5f464d7f610f72E"),

	// hop (no ethereum<->base direction on test networks yet)
	dk(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ProtocolHop): addr("0xb8901acB165ed027E32754E0FFe830802919727f"),
	dk(bridge.ChainArbitrum, bridge.ChainEthereum, bridge.ProtocolHop): addr("0x3749C4f034022c39ecafFaBA182555d4508caCCC"),
	dk(bridge.ChainEthereum, bridge.ChainOptimism, bridge.ProtocolHop): addr("0xb8901acB165ed027E32754E0FFe830802919727f"),
	dk(bridge.ChainOptimism, bridge.ChainEthereum, bridge.ProtocolHop): addr("0x83f6244Bd87662118d96D9a6D44f09dffF14b30E"),
	dk(bridge.ChainEthereum, bridge.ChainPolygon, bridge.ProtocolHop):  addr("0xb8901acB165ed027E32754E0FFe830802919727f"),
	dk(bridge.ChainPolygon, bridge.ChainEthereum, bridge.ProtocolHop):  addr("0x553bC791D746767166fA3888432038193cEED5E2"),
	dk(bridge.ChainArbitrum, bridge.ChainOptimism, bridge.ProtocolHop): addr("0x3749C4f034022c39ecafFaBA182555d4508caCCC"),
	dk(bridge.ChainOptimism, bridge.ChainArbitrum, bridge.ProtocolHop): addr("0x83f6244Bd87662118d96D9a6D44f09dffF14b30E"),
	dk(bridge.ChainPolygon, bridge.ChainArbitrum, bridge.ProtocolHop):  addr("0x553bC791D746767166fA3888432038193cEED5E2"),
	dk(bridge.ChainPolygon, bridge.ChainOptimism, bridge.ProtocolHop):  addr("0x553bC791D746767166fA3888432038193cEED5E2"),

	// stargate (all pairs among its chain set share the per-chain router)
	dk(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ProtocolStargate):   addr("0x7682f41e2fFF4672bbb7a056ED2B1E68Ff1f55ba"),
	dk(bridge.ChainEthereum, bridge.ChainOptimism, bridge.ProtocolStargate):   addr("0x7682f41e2fFF4672bbb7a056ED2B1E68Ff1f55ba"),
	dk(bridge.ChainEthereum, bridge.ChainBase, bridge.ProtocolStargate):       addr("0x7682f41e2fFF4672bbb7a056ED2B1E68Ff1f55ba"),
	dk(bridge.ChainEthereum, bridge.ChainPolygon, bridge.ProtocolStargate):    addr("0x7682f41e2fFF4672bbb7a056ED2B1E68Ff1f55ba"),
	dk(bridge.ChainEthereum, bridge.ChainAvalanche, bridge.ProtocolStargate):  addr("0x7682f41e2fFF4672bbb7a056ED2B1E68Ff1f55ba"),
	dk(bridge.ChainEthereum, bridge.ChainBSC, bridge.ProtocolStargate):        addr("0x7682f41e2fFF4672bbb7a056ED2B1E68Ff1f55ba"),
	dk(bridge.ChainArbitrum, bridge.ChainEthereum, bridge.ProtocolStargate):   addr("0x2a4C2F5ffB0E0F2dcB3f9EBBd442B8F77ECDB9Cc"),
	dk(bridge.ChainArbitrum, bridge.ChainOptimism, bridge.ProtocolStargate):   addr("0x2a4C2F5ffB0E0F2dcB3f9EBBd442B8F77ECDB9Cc"),
	dk(bridge.ChainArbitrum, bridge.ChainAvalanche, bridge.ProtocolStargate):  addr("0x2a4C2F5ffB0E0F2dcB3f9EBBd442B8F77ECDB9Cc"),
	dk(bridge.ChainArbitrum, bridge.ChainBSC, bridge.ProtocolStargate):        addr("0x2a4C2F5ffB0E0F2dcB3f9EBBd442B8F77ECDB9Cc"),
	dk(bridge.ChainOptimism, bridge.ChainEthereum, bridge.ProtocolStargate):   addr("0x95461eF0e0ecabC049a5c4a6B98Ca7B335FAF068"),
	dk(bridge.ChainOptimism, bridge.ChainArbitrum, bridge.ProtocolStargate):   addr("0x95461eF0e0ecabC049a5c4a6B98Ca7B335FAF068"),
	dk(bridge.ChainBase, bridge.ChainEthereum, bridge.ProtocolStargate):       addr("0x50B6EbC2103BFEc165949CC946d739d5650d7ae4"),
	dk(bridge.ChainPolygon, bridge.ChainEthereum, bridge.ProtocolStargate):    addr("0x817436a076060D158204d955E5403b6Ed0A5fac0"),
	dk(bridge.ChainPolygon, bridge.ChainAvalanche, bridge.ProtocolStargate):   addr("0x817436a076060D158204d955E5403b6Ed0A5fac0"),
	dk(bridge.ChainAvalanche, bridge.ChainEthereum, bridge.ProtocolStargate):  addr("0x45A01E4e04F14f7A4a6702c74187c5F6222033cd"),
	dk(bridge.ChainAvalanche, bridge.ChainPolygon, bridge.ProtocolStargate):   addr("0x45A01E4e04F14f7A4a6702c74187c5F6222033cd"),
	dk(bridge.ChainBSC, bridge.ChainEthereum, bridge.ProtocolStargate):        addr("0x4a364f8c717cAAD9A442737Eb7b8A55cc6cf18D8"),
	dk(bridge.ChainBSC, bridge.ChainArbitrum, bridge.ProtocolStargate):        addr("0x4a364f8c717cAAD9A442737Eb7b8A55cc6cf18D8"),

	// across
	dk(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ProtocolAcross): addr("0x5c7BCd6E7De5423a257D81B442095A1a6ced35C5"),
	dk(bridge.ChainEthereum, bridge.ChainOptimism, bridge.ProtocolAcross): addr("0x5c7BCd6E7De5423a257D81B442095A1a6ced35C5"),
	dk(bridge.ChainEthereum, bridge.ChainBase, bridge.ProtocolAcross):     addr("0x5c7BCd6E7De5423a257D81B442095A1a6ced35C5"),
	dk(bridge.ChainArbitrum, bridge.ChainEthereum, bridge.ProtocolAcross): addr("0xe35e9842fceaCA96570B734083f4a58e8F7C5f2A"),
	dk(bridge.ChainOptimism, bridge.ChainEthereum, bridge.ProtocolAcross): addr("0x6f26Bf09B1C792e3228e5467807a900A503c0281"),
	dk(bridge.ChainBase, bridge.ChainEthereum, bridge.ProtocolAcross):     addr("0x09aea4b2242abC8bb4BB78D537A67a245A7bEC64"),
	dk(bridge.ChainBase, bridge.ChainArbitrum, bridge.ProtocolAcross):     addr("0x09aea4b2242abC8bb4BB78D537A67a245A7bEC64"),
	dk(bridge.ChainBase, bridge.ChainOptimism, bridge.ProtocolAcross):     addr("0x09aea4b2242abC8bb4BB78D537A67a245A7bEC64"),
	dk(bridge.ChainPolygon, bridge.ChainEthereum, bridge.ProtocolAcross):  addr("0x9295ee1d8C5b022Be115A2AD3c30C72E34e7F096"),

	// synapse
	dk(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ProtocolSynapse):   addr("0x2796317b0fF8538F253012862c06787Adfb8cEb6"),
	dk(bridge.ChainEthereum, bridge.ChainAvalanche, bridge.ProtocolSynapse):  addr("0x2796317b0fF8538F253012862c06787Adfb8cEb6"),
	dk(bridge.ChainEthereum, bridge.ChainBSC, bridge.ProtocolSynapse):        addr("0x2796317b0fF8538F253012862c06787Adfb8cEb6"),
	dk(bridge.ChainArbitrum, bridge.ChainEthereum, bridge.ProtocolSynapse):   addr("0x6F4e8eBa4D337f874Ab57478AcC2Cb5BACdc19c9"),
	dk(bridge.ChainAvalanche, bridge.ChainEthereum, bridge.ProtocolSynapse):  addr("0xC05e61d0E7a63D27546389B7aD62FdFf5A91aACE"),
	dk(bridge.ChainAvalanche, bridge.ChainBSC, bridge.ProtocolSynapse):       addr("0xC05e61d0E7a63D27546389B7aD62FdFf5A91aACE"),
	dk(bridge.ChainBSC, bridge.ChainEthereum, bridge.ProtocolSynapse):        addr("0xd123f70AE324d34A9E76b67a27bf77593bA8749f"),
	dk(bridge.ChainBSC, bridge.ChainAvalanche, bridge.ProtocolSynapse):       addr("0xd123f70AE324d34A9E76b67a27bf77593bA8749f"),
	dk(bridge.ChainPolygon, bridge.ChainEthereum, bridge.ProtocolSynapse):    addr("0x8F5BBB2BB8c2Ee94639E55d5F41de9b4839C1280"),
	dk(bridge.ChainOptimism, bridge.ChainEthereum, bridge.ProtocolSynapse):   addr("0xAf41a65F786339e7911F4acDAD6BD49426F2Dc6b"),

	// celer cBridge
	dk(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ProtocolCeler):  addr("0x5427FEFA711Eff984124bFBB1AB6fbf5E3DA1820"),
	dk(bridge.ChainEthereum, bridge.ChainOptimism, bridge.ProtocolCeler):  addr("0x5427FEFA711Eff984124bFBB1AB6fbf5E3DA1820"),
	dk(bridge.ChainEthereum, bridge.ChainPolygon, bridge.ProtocolCeler):   addr("0x5427FEFA711Eff984124bFBB1AB6fbf5E3DA1820"),
	dk(bridge.ChainEthereum, bridge.ChainAvalanche, bridge.ProtocolCeler): addr("0x5427FEFA711Eff984124bFBB1AB6fbf5E3DA1820"),
	dk(bridge.ChainEthereum, bridge.ChainBSC, bridge.ProtocolCeler):       addr("0x5427FEFA711Eff984124bFBB1AB6fbf5E3DA1820"),
	dk(bridge.ChainArbitrum, bridge.ChainEthereum, bridge.ProtocolCeler):  addr("0x1619DE6B6B20eD217a58d00f37B9d47C7663feca"),
	dk(bridge.ChainOptimism, bridge.ChainEthereum, bridge.ProtocolCeler):  addr("0x9D39Fc627A6d9d9F8C831c16995b209548cc3401"),
	dk(bridge.ChainPolygon, bridge.ChainEthereum, bridge.ProtocolCeler):   addr("0x88DCDC47D2f83a99CF0000FDF667A468bB958a78"),
	dk(bridge.ChainAvalanche, bridge.ChainEthereum, bridge.ProtocolCeler): addr("0xef3c714c9425a8F3697A9C969Dc1af30ba82e5d4"),
	dk(bridge.ChainBSC, bridge.ChainEthereum, bridge.ProtocolCeler):       addr("0xdd90E5E87A2081Dcf0391920868eBc2FFB81a1aF"),
	dk(bridge.ChainBSC, bridge.ChainAvalanche, bridge.ProtocolCeler):      addr("0xdd90E5E87A2081Dcf0391920868eBc2FFB81a1aF"),
	dk(bridge.ChainAvalanche, bridge.ChainBSC, bridge.ProtocolCeler):      addr("0xef3c714c9425a8F3697A9C969Dc1af30ba82e5d4"),
}
