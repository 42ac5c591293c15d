package server

type HttpConfig struct {
	// Host is the interface the server listens on.
	Host string `conf:"host"`

	// Port is the port the server listens on. Zero picks a free port.
	Port int `conf:"port" validate:"gte=0,lte=65535"`

	// H2c enables HTTP/2 over cleartext connections.
	H2c bool `conf:"h2c"`
}
