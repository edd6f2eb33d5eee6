package docker

import (
	"bytes"
	"fmt"

	"github.com/simonhull/create-my-stack/internal/config"
	"gopkg.in/yaml.v3"
)

const network = "app-network"

// Compose is a docker-compose document.
type Compose struct {
	Services Services          `yaml:"services"`
	Networks map[string]Driver `yaml:"networks,omitempty"`
	Volumes  map[string]Driver `yaml:"volumes,omitempty"`
}

// Driver is a network or volume declaration.
type Driver struct {
	Driver string `yaml:"driver"`
}

// Build points a service at its Dockerfile.
type Build struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile"`
}

// Healthcheck mirrors the compose healthcheck block.
type Healthcheck struct {
	Test     []string `yaml:"test"`
	Interval string   `yaml:"interval"`
	Timeout  string   `yaml:"timeout"`
	Retries  int      `yaml:"retries"`
}

// Dependency is a depends_on entry.
type Dependency struct {
	Condition string `yaml:"condition"`
}

// Service is a single compose service. Field order is the order written.
type Service struct {
	Image         string                `yaml:"image,omitempty"`
	Build         *Build                `yaml:"build,omitempty"`
	ContainerName string                `yaml:"container_name"`
	Restart       string                `yaml:"restart,omitempty"`
	Ports         []string              `yaml:"ports,omitempty"`
	Environment   []string              `yaml:"environment,omitempty"`
	Volumes       []string              `yaml:"volumes,omitempty"`
	DependsOn     map[string]Dependency `yaml:"depends_on,omitempty"`
	Healthcheck   *Healthcheck          `yaml:"healthcheck,omitempty"`
	Networks      []string              `yaml:"networks,omitempty"`
}

// NamedService keeps a service together with its key.
type NamedService struct {
	Name    string
	Service Service
}

// Services marshals as a mapping in insertion order, unlike a Go map.
type Services []NamedService

func (s Services) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, ns := range s {
		var value yaml.Node
		if err := value.Encode(ns.Service); err != nil {
			return nil, fmt.Errorf("service %s: %w", ns.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: ns.Name},
			&value,
		)
	}
	return node, nil
}

func (s *Services) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("services must be a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var svc Service
		if err := node.Content[i+1].Decode(&svc); err != nil {
			return err
		}
		*s = append(*s, NamedService{Name: node.Content[i].Value, Service: svc})
	}
	return nil
}

// Get returns the service called name.
func (s Services) Get(name string) (Service, bool) {
	for _, ns := range s {
		if ns.Name == name {
			return ns.Service, true
		}
	}
	return Service{}, false
}

// Names lists service keys in order.
func (s Services) Names() []string {
	names := make([]string, len(s))
	for i, ns := range s {
		names[i] = ns.Name
	}
	return names
}

// database describes the container for each database kind.
type database struct {
	service string
	image   string
	port    int
	env     []string
	data    string
	health  []string
	url     string // connection URL, %s is the host and %s the database name
}

func databaseFor(cfg *config.ProjectConfig) (database, bool) {
	name := cfg.DatabaseName()
	switch cfg.Backend.Database {
	case config.PostgreSQL:
		return database{
			service: "postgres",
			image:   "postgres:16-alpine",
			port:    5432,
			env:     []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "POSTGRES_DB=" + name},
			data:    "/var/lib/postgresql/data",
			health:  []string{"CMD-SHELL", "pg_isready -U postgres"},
			url:     "postgresql://postgres:postgres@%s:5432/%s",
		}, true
	case config.MySQL:
		return database{
			service: "mysql",
			image:   "mysql:8",
			port:    3306,
			env:     []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=" + name},
			data:    "/var/lib/mysql",
			health:  []string{"CMD", "mysqladmin", "ping", "-h", "localhost"},
			url:     "mysql://root:root@%s:3306/%s",
		}, true
	case config.MongoDB:
		return database{
			service: "mongodb",
			image:   "mongo:7",
			port:    27017,
			env:     []string{"MONGO_INITDB_DATABASE=" + name},
			data:    "/data/db",
			health:  []string{"CMD", "mongosh", "--eval", "db.adminCommand('ping')"},
			url:     "mongodb://%s:27017/%s",
		}, true
	}
	// SQLite lives in the backend container, no service needed.
	return database{}, false
}

func (d database) URL(cfg *config.ProjectConfig, host string) string {
	return fmt.Sprintf(d.url, host, cfg.DatabaseName())
}

func (d database) volume() string { return d.service + "_data" }

func (d database) container(cfg *config.ProjectConfig, suffix string) Service {
	return Service{
		Image:         d.image,
		ContainerName: cfg.ProjectName + "-" + d.service + suffix,
		Restart:       "unless-stopped",
		Ports:         []string{fmt.Sprintf("%d:%d", d.port, d.port)},
		Environment:   d.env,
		Volumes:       []string{d.volume() + ":" + d.data},
		Healthcheck: &Healthcheck{
			Test:     d.health,
			Interval: "10s",
			Timeout:  "5s",
			Retries:  5,
		},
	}
}

func redis(cfg *config.ProjectConfig, suffix string) Service {
	return Service{
		Image:         "redis:7-alpine",
		ContainerName: cfg.ProjectName + "-redis" + suffix,
		Restart:       "unless-stopped",
		Ports:         []string{"6379:6379"},
		Volumes:       []string{"redis_data:/data"},
		Healthcheck: &Healthcheck{
			Test:     []string{"CMD", "redis-cli", "ping"},
			Interval: "10s",
			Timeout:  "5s",
			Retries:  5,
		},
	}
}

func usesRedis(cfg *config.ProjectConfig) bool {
	return cfg.Backend.Auth == config.Session
}

// ProductionCompose builds docker-compose.yml: the application containers
// behind an nginx reverse proxy.
func ProductionCompose(cfg *config.ProjectConfig, paths Paths) Compose {
	c := Compose{
		Networks: map[string]Driver{network: {Driver: "bridge"}},
		Volumes:  map[string]Driver{},
	}
	nets := []string{network}
	healthy := map[string]Dependency{}

	env := []string{
		"NODE_ENV=production",
		fmt.Sprintf("PORT=%d", cfg.Backend.Port),
	}
	if cfg.HasFrontend() {
		env = append(env, "CORS_ORIGIN=http://localhost")
	}

	db, hasService := databaseFor(cfg)
	switch {
	case hasService:
		env = append(env, "DATABASE_URL="+db.URL(cfg, db.service))
		healthy[db.service] = Dependency{Condition: "service_healthy"}
	case cfg.Backend.Database == config.SQLite:
		env = append(env, "DATABASE_URL=file:/app/data/app.db")
	}

	switch cfg.Backend.Auth {
	case config.JWT:
		env = append(env, "JWT_SECRET=${JWT_SECRET:-change-me-in-production}", "JWT_EXPIRES_IN=7d")
	case config.Session:
		env = append(env, "SESSION_SECRET=${SESSION_SECRET:-change-me-in-production}", "REDIS_URL=redis://redis:6379")
		healthy["redis"] = Dependency{Condition: "service_healthy"}
	}

	backend := Service{
		Build:         &Build{Context: paths.BackendContext, Dockerfile: paths.BackendDockerfile},
		ContainerName: cfg.ProjectName + "-backend",
		Restart:       "unless-stopped",
		Ports:         []string{fmt.Sprintf("%d:%d", cfg.Backend.Port, cfg.Backend.Port)},
		Environment:   env,
		Networks:      nets,
	}
	if len(healthy) > 0 {
		backend.DependsOn = healthy
	}
	if cfg.Backend.Database == config.SQLite {
		backend.Volumes = []string{"sqlite_data:/app/data"}
		c.Volumes["sqlite_data"] = Driver{Driver: "local"}
	}
	c.Services = append(c.Services, NamedService{"backend", backend})

	proxyDeps := map[string]Dependency{"backend": {Condition: "service_started"}}
	if cfg.HasFrontend() {
		frontend := Service{
			Build:         &Build{Context: paths.FrontendContext, Dockerfile: paths.FrontendDockerfile},
			ContainerName: cfg.ProjectName + "-frontend",
			Restart:       "unless-stopped",
			DependsOn:     map[string]Dependency{"backend": {Condition: "service_started"}},
			Networks:      nets,
		}
		if cfg.Frontend.Framework == config.NextJS {
			frontend.Environment = []string{
				"NODE_ENV=production",
				fmt.Sprintf("NEXT_PUBLIC_API_URL=http://localhost:%d", cfg.Backend.Port),
			}
		} else {
			frontend.Volumes = []string{"./docker/nginx.frontend.conf:/etc/nginx/conf.d/default.conf:ro"}
		}
		c.Services = append(c.Services, NamedService{"frontend", frontend})
		proxyDeps["frontend"] = Dependency{Condition: "service_started"}
	}

	if hasService {
		svc := db.container(cfg, "")
		svc.Networks = nets
		c.Services = append(c.Services, NamedService{db.service, svc})
		c.Volumes[db.volume()] = Driver{Driver: "local"}
	}
	if usesRedis(cfg) {
		svc := redis(cfg, "")
		svc.Networks = nets
		c.Services = append(c.Services, NamedService{"redis", svc})
		c.Volumes["redis_data"] = Driver{Driver: "local"}
	}

	c.Services = append(c.Services, NamedService{"nginx", Service{
		Image:         "nginx:alpine",
		ContainerName: cfg.ProjectName + "-nginx",
		Restart:       "unless-stopped",
		Ports:         []string{"80:80", "443:443"},
		Volumes:       []string{"./docker/nginx.conf:/etc/nginx/nginx.conf:ro"},
		DependsOn:     proxyDeps,
		Networks:      nets,
	}})

	if len(c.Volumes) == 0 {
		c.Volumes = nil
	}
	return c
}

// DevelopmentCompose builds docker-compose.dev.yml with only the backing
// services, for running the apps on the host.
func DevelopmentCompose(cfg *config.ProjectConfig) Compose {
	c := Compose{Volumes: map[string]Driver{}}

	if db, ok := databaseFor(cfg); ok {
		c.Services = append(c.Services, NamedService{db.service, db.container(cfg, "-dev")})
		c.Volumes[db.volume()] = Driver{Driver: "local"}
	}
	if usesRedis(cfg) {
		c.Services = append(c.Services, NamedService{"redis", redis(cfg, "-dev")})
		c.Volumes["redis_data"] = Driver{Driver: "local"}
	}

	if len(c.Volumes) == 0 {
		c.Volumes = nil
	}
	return c
}

// Marshal encodes a compose document after a comment header.
func Marshal(header string, c Compose) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(header)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode compose file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
