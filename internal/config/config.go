package config

import "time"

// Config is the root configuration shared by the download and annotate commands.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	HTTP      HTTPConfig      `yaml:"http"`
	MDS       MDSConfig       `yaml:"mds"`
	NemoServe NemoServeConfig `yaml:"nemoserve"`
	SAPBERT   SAPBERTConfig   `yaml:"sapbert"`
	Paths     PathsConfig     `yaml:"paths"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// HTTPConfig holds the outbound client settings shared by every upstream service.
type HTTPConfig struct {
	Timeout     time.Duration `yaml:"timeout"      env:"HTTP_TIMEOUT"      env-default:"60s"`
	MaxAttempts int           `yaml:"max_attempts" env:"HTTP_MAX_ATTEMPTS" env-default:"4"`
	BackoffBase time.Duration `yaml:"backoff_base" env:"HTTP_BACKOFF_BASE" env-default:"1s"`
}

// MDSConfig holds metadata service settings.
type MDSConfig struct {
	URL     string `yaml:"url"     env:"MDS_URL"     env-default:"https://preprod.healdata.org/mds/"`
	Limit   int    `yaml:"limit"   env:"MDS_LIMIT"   env-default:"1000"`
	Workers int    `yaml:"workers" env:"MDS_WORKERS" env-default:"1"`
}

// NemoServeConfig holds recognizer settings.
type NemoServeConfig struct {
	URL string `yaml:"url" env:"NEMOSERVE_URL" env-default:"https://med-nemo.apps.renci.org/"`
}

// SAPBERTConfig holds normalizer settings.
type SAPBERTConfig struct {
	URL string `yaml:"url" env:"SAPBERT_URL" env-default:"https://med-nemo-sapbert.apps.renci.org/"`
}

// PathsConfig holds the on-disk layout.
type PathsConfig struct {
	DictionariesDir string `yaml:"dictionaries_dir" env:"DICTIONARIES_DIR" env-default:"data/dictionaries"`
	AnnotatedDir    string `yaml:"annotated_dir"    env:"ANNOTATED_DIR"    env-default:"data/annotated"`
}
