package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultName            = "MSDOS"
	defaultArch            = "x86_16"
	defaultDisassembler    = "x86asm"
	defaultDecodeWindow    = 20
	defaultMaxInstructions = 1 << 16
)

// LoaderProfile represents the configuration the MSDOS view is registered with.
type LoaderProfile struct {
	Name            string `yaml:"name" json:"name"`
	LongName        string `yaml:"long_name" json:"long_name"`
	Arch            string `yaml:"arch" json:"arch"`
	Disassembler    string `yaml:"disassembler" json:"disassembler"`
	DecodeWindow    int    `yaml:"decode_window" json:"decode_window"`
	MaxInstructions int    `yaml:"max_instructions" json:"max_instructions"`

	// UseDefaultLoaderSettings fills every unset field from Default.
	UseDefaultLoaderSettings bool `yaml:"use_default_loader_settings" json:"use_default_loader_settings"`
}

// Default returns the built-in profile.
func Default() *LoaderProfile {
	return &LoaderProfile{
		Name:                     defaultName,
		LongName:                 defaultName,
		Arch:                     defaultArch,
		Disassembler:             defaultDisassembler,
		DecodeWindow:             defaultDecodeWindow,
		MaxInstructions:          defaultMaxInstructions,
		UseDefaultLoaderSettings: true,
	}
}

// LoadProfile loads a loader profile from a YAML (or JSON) file.
func LoadProfile(filename string) (*LoaderProfile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer file.Close()

	var profile LoaderProfile
	if err := yaml.NewDecoder(file).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	resolved, err := profile.Resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filename, err)
	}
	return resolved, nil
}

// Resolve returns a validated copy of p, with unset fields taken from
// Default when UseDefaultLoaderSettings is set. p is not modified.
func (p *LoaderProfile) Resolve() (*LoaderProfile, error) {
	resolved := *p
	if resolved.UseDefaultLoaderSettings {
		resolved.applyDefaults()
	}
	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return &resolved, nil
}

func (p *LoaderProfile) applyDefaults() {
	def := Default()
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.LongName == "" {
		p.LongName = p.Name
	}
	if p.Arch == "" {
		p.Arch = def.Arch
	}
	if p.Disassembler == "" {
		p.Disassembler = def.Disassembler
	}
	if p.DecodeWindow == 0 {
		p.DecodeWindow = def.DecodeWindow
	}
	if p.MaxInstructions == 0 {
		p.MaxInstructions = def.MaxInstructions
	}
}

// Validate checks that every setting the view needs is present.
func (p *LoaderProfile) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("name is required")
	case p.Arch != defaultArch:
		return fmt.Errorf("unsupported arch %q", p.Arch)
	case p.Disassembler == "":
		return fmt.Errorf("disassembler is required")
	case p.DecodeWindow <= 0:
		return fmt.Errorf("decode_window must be positive, got %d", p.DecodeWindow)
	case p.MaxInstructions <= 0:
		return fmt.Errorf("max_instructions must be positive, got %d", p.MaxInstructions)
	}
	return nil
}
