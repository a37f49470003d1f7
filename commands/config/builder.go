package config

type Builder struct {
	config *Config
}

func NewBuilder(pathToYaml string) (*Builder, error) {
	config := Config{}

	if pathToYaml != "" {
		var err error
		config, err = Load(pathToYaml)
		if err != nil {
			return nil, err
		}
	}

	return &Builder{config: &config}, nil
}

func (b *Builder) Build() Config {
	return *b.config
}

func (b *Builder) WithHostname(hostname string) *Builder {
	if hostname != "" {
		b.config.Hostname = hostname
	}
	return b
}

func (b *Builder) WithResolvConfTarget(target string) *Builder {
	if target != "" {
		b.config.ResolvConfTarget = target
	}
	return b
}

func (b *Builder) WithPruneBinaries(patterns []string) *Builder {
	if len(patterns) != 0 {
		b.config.PruneBinaries = patterns
	}
	return b
}

func (b *Builder) WithMetronEndpoint(metronEndpoint string) *Builder {
	if metronEndpoint != "" {
		b.config.MetronEndpoint = metronEndpoint
	}
	return b
}

func (b *Builder) WithLogLevel(level string, isSet bool) *Builder {
	if isSet {
		b.config.LogLevel = level
	}
	return b
}
