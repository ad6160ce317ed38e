package db

import (
	"time"
)

type Config struct {
	File        string        `yaml:"file"`
	LockTimeout time.Duration `yaml:"lockTimeout"`
	ReadOnly    bool          `yaml:"-"`
}
