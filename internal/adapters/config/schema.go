package config

// File represents the structure of config.yaml.
// Unset fields keep their defaults.
type File struct {
	StoreDir    string `yaml:"store_dir"`
	PassBinary  string `yaml:"pass_binary"`
	GPGBinary   string `yaml:"gpg_binary"`
	Backend     string `yaml:"backend"`
	ClipTimeout string `yaml:"clip_timeout"`
	Watch       *bool  `yaml:"watch"`
	EventBuffer int    `yaml:"event_buffer"`
}
