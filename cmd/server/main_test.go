package main

import (
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pfp-registry.backend/internal/config"
	"pfp-registry.backend/pkg/redis"
)

func withMainSeams(t *testing.T) {
	t.Helper()

	origDotenv, origCfg, origLog := loadDotenv, loadCfg, initLog
	origRedis, origOpen, origRun := initRedis, openDB, runServer
	t.Cleanup(func() {
		loadDotenv, loadCfg, initLog = origDotenv, origCfg, origLog
		initRedis, openDB, runServer = origRedis, origOpen, origRun
	})

	mr := miniredis.RunT(t)

	loadDotenv = func(...string) error { return errors.New("no .env") }
	loadCfg = func() *config.Config {
		cfg := config.Load()
		cfg.Sweep.Enabled = false
		return cfg
	}
	initLog = func(string) {}
	initRedis = func(url, password string) error {
		redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
		return nil
	}
	openDB = func(string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}
	runServer = func(*gin.Engine, string) error { return nil }
}

func TestRunMainProcess(t *testing.T) {
	withMainSeams(t)
	require.NoError(t, runMainProcess())
}

func TestRunMainProcess_RedisFailure(t *testing.T) {
	withMainSeams(t)
	initRedis = func(string, string) error { return errors.New("connection refused") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestRunMainProcess_DBFailure(t *testing.T) {
	withMainSeams(t)
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("dial error") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}

func TestRunMainProcess_ServerFailure(t *testing.T) {
	withMainSeams(t)
	runServer = func(*gin.Engine, string) error { return errors.New("port in use") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server")
}
