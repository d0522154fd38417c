package util

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

const defaultLogLevel = "warn"

var (
	logLevels map[string]string
	logMu     sync.Mutex
)

func init() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)
}

// InitLog reads the per module log levels from config, e.g.
// "*:info,ledger:debug,rpc:warn".
func InitLog() {
	logMu.Lock()
	defer logMu.Unlock()

	logLevels = parseLogLevelConfig(viper.GetString(common.CfgLogLevels))
	if level, err := log.ParseLevel(logLevels["*"]); err == nil {
		log.SetLevel(level)
	}
}

func parseLogLevelConfig(cfg string) map[string]string {
	ret := make(map[string]string)
	for _, item := range strings.Split(cfg, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), ":", 2)
		if len(parts) != 2 {
			continue
		}
		ret[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if _, ok := ret["*"]; !ok {
		ret["*"] = defaultLogLevel
	}
	return ret
}

// GetLoggerForModule returns a logger with the level configured for the module.
func GetLoggerForModule(module string) *log.Entry {
	logMu.Lock()
	levels := logLevels
	logMu.Unlock()
	if levels == nil {
		levels = parseLogLevelConfig(viper.GetString(common.CfgLogLevels))
	}

	levelStr, ok := levels[module]
	if !ok {
		levelStr = levels["*"]
	}
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.New()
	logger.SetFormatter(log.StandardLogger().Formatter)
	logger.SetOutput(log.StandardLogger().Out)
	logger.SetLevel(level)
	return logger.WithFields(log.Fields{"prefix": module})
}
