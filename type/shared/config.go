package shared

type Config struct {
	Port                 *string        `yaml:"port" validate:"required"`
	Cors                 []*string      `yaml:"cors"`
	UploadDir            *string        `yaml:"upload_dir" validate:"required"`
	OutputDir            *string        `yaml:"output_dir" validate:"required"`
	MaxUploadMB          *int           `yaml:"max_upload_mb" validate:"omitempty,min=1"`
	OutputRetentionHours *int           `yaml:"output_retention_hours" validate:"omitempty,min=0"`
	Template             TemplateConfig `yaml:"template"`
	Signing              SigningConfig  `yaml:"signing"`
	Storage              StorageConfig  `yaml:"storage"`
	Mail                 MailConfig     `yaml:"mail"`
}

// TemplateConfig holds the certificate artwork. An empty path means the element is absent.
type TemplateConfig struct {
	BackgroundImagePath    string `yaml:"background_image_path"`
	HodSignaturePath       string `yaml:"hod_signature_path"`
	PrincipalSignaturePath string `yaml:"principal_signature_path"`
	DirectorSignaturePath  string `yaml:"director_signature_path"`
}

type SigningConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertPath string `yaml:"cert_path" validate:"required_if=Enabled true"`
	KeyPath  string `yaml:"key_path" validate:"required_if=Enabled true"`
}

type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint" validate:"required_if=Enabled true"`
	AccessKey string `yaml:"access_key" validate:"required_if=Enabled true"`
	SecretKey string `yaml:"secret_key" validate:"required_if=Enabled true"`
	Bucket    string `yaml:"bucket" validate:"required_if=Enabled true"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type MailConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host" validate:"required_if=Enabled true"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user" validate:"required_if=Enabled true"`
	Pass    string `yaml:"pass"`
}

// UploadLimit returns the maximum accepted upload size in bytes.
func (c *Config) UploadLimit() int {
	if c.MaxUploadMB == nil {
		return 15 * 1024 * 1024
	}
	return *c.MaxUploadMB * 1024 * 1024
}

func (c *Config) CorsOrigins() []string {
	origins := make([]string, 0, len(c.Cors))
	for _, origin := range c.Cors {
		if origin != nil && *origin != "" {
			origins = append(origins, *origin)
		}
	}
	return origins
}

// RetentionHours is zero when the output sweep is disabled.
func (c *Config) RetentionHours() int {
	if c.OutputRetentionHours == nil {
		return 0
	}
	return *c.OutputRetentionHours
}
