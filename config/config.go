package config

import (
	"errors"
	"fmt"
	"time"
)

// FlagDateLayout is the format accepted by the --from-date/--to-date flags.
const FlagDateLayout = "2006-01-02"

type log struct {
	Level  string
	Pretty bool
}

type exportBase struct {
	FromDate    string `mapstructure:"from-date"`
	ToDate      string `mapstructure:"to-date"`
	SheetID     string `mapstructure:"sheet-id"`
	OutDir      string `mapstructure:"out-dir"`
	WalletDir   string `mapstructure:"wallet-dir"`
	Credentials string
	PageSize    int `mapstructure:"page-size"`
	MaxPages    int `mapstructure:"max-pages"`
}

// ExportConfig holds everything the export command needs beyond its positional args.
type ExportConfig struct {
	Log  log
	Base exportBase
}

func (conf *ExportConfig) Validate() error {
	if err := validateDateFlag("from-date", conf.Base.FromDate); err != nil {
		return err
	}
	if err := validateDateFlag("to-date", conf.Base.ToDate); err != nil {
		return err
	}
	if conf.Base.PageSize <= 0 {
		return errors.New("page-size must be a positive number")
	}
	if conf.Base.MaxPages <= 0 {
		return errors.New("max-pages must be a positive number")
	}
	if conf.Base.WalletDir == "" {
		return errors.New("wallet-dir must be set")
	}
	if conf.Base.OutDir == "" {
		return errors.New("out-dir must be set")
	}
	return nil
}

func validateDateFlag(name, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(FlagDateLayout, value); err != nil {
		return fmt.Errorf("%s must be a date in YYYY-MM-DD format, got '%s'", name, value)
	}
	return nil
}
