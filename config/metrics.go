package config

// MetricsConfig configures generation metrics export.
type MetricsConfig struct {
	// Textfile receives the Prometheus text exposition after each run, in the
	// format read by the node_exporter textfile collector. Empty disables it.
	Textfile string `json:"textfile"`
}
