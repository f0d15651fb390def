package config

import (
	"fmt"
	"strconv"
)

// GrpcServerConfig configures the gRPC listener that serves health probes.
type GrpcServerConfig struct {
	Port              string `koanf:"port"`
	ReflectionEnabled bool   `koanf:"reflection"`
}

func (c *GrpcServerConfig) String() string {
	return NewSection("gRPC Server").
		Add("port", c.Port).
		Add("reflection", c.ReflectionEnabled).
		String()
}

func (c *GrpcServerConfig) Validate() error {
	if err := required("grpc.port", c.Port); err != nil {
		return err
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("grpc.port is not a number: %s", c.Port)
	}
	return validPort("grpc.port", port)
}
