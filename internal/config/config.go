// Package config loads the CLI's optional HCL configuration file.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the top-level schema of a mirrortree.hcl file.
type Config struct {
	Mirrors []Mirror `hcl:"mirror,block"`
}

// Mirror names a manifest and where its artifacts land.
//
//	mirror "fedora" {
//	  manifest   = "manifests/fedora.json"
//	  dest       = "/srv/mirror/fedora"
//	  url_prefix = "https://mirror.example.org/fedora"
//	}
type Mirror struct {
	Name string `hcl:"name,label"`
	// Manifest is the path of the tree description file (.json/.yaml).
	Manifest string `hcl:"manifest"`
	// Dest is the default extraction directory for fetch.
	Dest string `hcl:"dest,optional"`
	// URLPrefix, when set, overrides the manifest root's url_prefix.
	URLPrefix string `hcl:"url_prefix,optional"`
}

// Load reads and decodes an HCL config file.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// Mirror returns the named mirror block, or the first block when name is
// empty.
func (c *Config) Mirror(name string) (*Mirror, bool) {
	if name == "" {
		if len(c.Mirrors) == 0 {
			return nil, false
		}
		return &c.Mirrors[0], true
	}
	for i := range c.Mirrors {
		if c.Mirrors[i].Name == name {
			return &c.Mirrors[i], true
		}
	}
	return nil, false
}
