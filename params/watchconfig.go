package params

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/chainflow/bridge-router/log"
)

// OnConfigReload is called after a successful hot reload with the new
// config. Assigned once at startup before WatchConfig.
var OnConfigReload func(*BridgeConfig)

// WatchConfig watch the loaded config file and hot reload on change
func WatchConfig(isServer bool) {
	if configFile == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("fsnotify: new watcher failed", "err", err)
		return
	}

	go startWatcher(watcher, isServer)

	// watch the directory, editors replace files instead of writing in place
	file := filepath.Clean(configFile)
	dir := filepath.Dir(file)
	err = watcher.Add(dir)
	if err != nil {
		log.Error("fsnotify: add config path failed", "err", err)
		return
	}
	log.Infof("fsnotify: start to watch config file %v", file)
}

func startWatcher(watcher *fsnotify.Watcher, isServer bool) {
	defer watcher.Close()

	ops := []fsnotify.Op{
		fsnotify.Write,
		fsnotify.Create,
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok { // Channel was closed
				log.Error("fsnotify: channel was closed")
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(configFile) {
				continue
			}
			log.Trace("fsnotify: watcher event", "file", ev.Name, "op", ev.Op)
			for _, op := range ops {
				if ev.Has(op) {
					config, err := ReloadConfig(isServer)
					if err == nil {
						log.Info("fsnotify: reload config success")
						if OnConfigReload != nil {
							OnConfigReload(config)
						}
					} else {
						log.Warn("fsnotify: reload config failed", "err", err)
					}
					break
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok { // Channel was closed
				log.Error("fsnotify: channel was closed")
				return
			}
			log.Warn("fsnotify: watcher error", "err", err)
		}
	}
}
