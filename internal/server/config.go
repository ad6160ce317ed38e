package server

import (
	"time"
)

type Config struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// CanonicalHost, when set, rejects requests addressed to any other Host.
	CanonicalHost string `yaml:"canonicalHost"`

	AntidosBuckets int           `yaml:"antidosBuckets"`
	AntidosPeriod  time.Duration `yaml:"antidosPeriod"`
	MaxConcurrent  int64         `yaml:"maxConcurrent"`

	MaxBodyBytes      int64 `yaml:"maxBodyBytes"`
	MaxSequenceLength int   `yaml:"maxSequenceLength"`

	// AdminKey enables /admin/history for requests carrying it in X-Admin-Key.
	AdminKey string `yaml:"adminKey"`

	TLSCert           string        `yaml:"tlsCert"`
	TLSKey            string        `yaml:"tlsKey"`
	TLSReloadInterval time.Duration `yaml:"tlsReloadInterval"`
}
