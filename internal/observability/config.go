package observability

import "time"

type Config struct {
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"false"`
	ScrapeInterval time.Duration `env:"METRICS_SCRAPE_INTERVAL" envDefault:"10s"`

	OtelEnabled     bool              `env:"OTEL_ENABLED" envDefault:"false"`
	OtelSampleRatio float64           `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`
	OtelEndpoint    string            `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelHeaders     map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	OtelInsecure    bool              `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	OtelServiceName string            `env:"OTEL_SERVICE_NAME" envDefault:"learnosphere"`
	OtelEnvironment string            `env:"APP_ENV" envDefault:"development"`
	OtelVersion     string            `env:"APP_VERSION"`
}
