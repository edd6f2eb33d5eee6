package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const maxPackageNameLength = 214

var (
	scopedPackagePattern = regexp.MustCompile(`^(?:@([^/]+?)[/])?([^/]+?)$`)

	blacklistedNames = []string{"node_modules", "favicon.ico"}

	nodeCoreModules = []string{
		"assert", "async_hooks", "buffer", "child_process", "cluster", "console",
		"constants", "crypto", "dgram", "diagnostics_channel", "dns", "domain",
		"events", "fs", "http", "http2", "https", "inspector", "module", "net",
		"os", "path", "perf_hooks", "process", "punycode", "querystring",
		"readline", "repl", "stream", "string_decoder", "sys", "timers", "tls",
		"trace_events", "tty", "url", "util", "v8", "vm", "wasi",
		"worker_threads", "zlib",
	}
)

// ValidatePackageName checks name against the npm rules for new packages.
func ValidatePackageName(name string) error {
	if name == "" {
		return errors.New("project name is required")
	}

	var problems []string
	if strings.HasPrefix(name, ".") {
		problems = append(problems, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		problems = append(problems, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		problems = append(problems, "name cannot contain leading or trailing spaces")
	}
	for _, b := range blacklistedNames {
		if strings.EqualFold(name, b) {
			problems = append(problems, fmt.Sprintf("%s is a blacklisted name", b))
		}
	}
	if oneOf(strings.ToLower(name), nodeCoreModules...) {
		problems = append(problems, fmt.Sprintf("%s is a core module name", name))
	}
	if len(name) > maxPackageNameLength {
		problems = append(problems, "name can no longer contain more than 214 characters")
	}
	if strings.ToLower(name) != name {
		problems = append(problems, "name can no longer contain capital letters")
	}
	segments := strings.Split(name, "/")
	if strings.ContainsAny(segments[len(segments)-1], "~'!()*") {
		problems = append(problems, `name can no longer contain special characters ("~'!()*")`)
	}
	if !urlSafe(name) {
		m := scopedPackagePattern.FindStringSubmatch(name)
		if m == nil || m[1] == "" || !urlSafe(m[1]) || !urlSafe(m[2]) {
			problems = append(problems, "name can only contain URL-friendly characters")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid package name: %s", strings.Join(problems, ", "))
	}
	return nil
}

// urlSafe reports whether s survives encodeURIComponent unchanged.
func urlSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_.!~*'()", r):
		default:
			return false
		}
	}
	return true
}

// Validate reports every inconsistency in the configuration at once.
func (c *ProjectConfig) Validate() error {
	var errs []error

	if err := ValidatePackageName(c.ProjectName); err != nil {
		errs = append(errs, err)
	}

	check := func(ok bool, field string, value any) {
		if !ok {
			errs = append(errs, fmt.Errorf("invalid %s: %q", field, value))
		}
	}
	check(c.Backend.Framework.Valid(), "backend framework", c.Backend.Framework)
	check(c.Backend.Language.Valid(), "backend language", c.Backend.Language)
	check(c.Backend.Database.Valid(), "database", c.Backend.Database)
	check(c.Backend.ORM.Valid(), "orm", c.Backend.ORM)
	check(c.Backend.Auth.Valid(), "auth strategy", c.Backend.Auth)
	check(c.Backend.Mailing.Valid(), "mailing provider", c.Backend.Mailing)
	check(c.Frontend.Framework.Valid(), "frontend framework", c.Frontend.Framework)
	check(c.Frontend.Styling.Valid(), "styling", c.Frontend.Styling)
	check(c.Frontend.StateManagement.Valid(), "state management", c.Frontend.StateManagement)
	check(c.Structure.Valid(), "structure", c.Structure)
	check(c.PackageManager.Valid(), "package manager", c.PackageManager)

	if c.Backend.Framework == NestJS && c.Backend.Language != TypeScript {
		errs = append(errs, errors.New("nestjs requires typescript"))
	}
	if c.Backend.ORM.Valid() && c.Backend.Database.Valid() &&
		!oneOf(c.Backend.ORM, CompatibleORMs(c.Backend.Database)...) {
		errs = append(errs, fmt.Errorf("orm %s is not compatible with database %s", c.Backend.ORM, c.Backend.Database))
	}
	if c.Frontend.StateManagement.Valid() && !stateAllowed(c.Frontend.Framework, c.Frontend.StateManagement) {
		errs = append(errs, fmt.Errorf("state management %s is not available for frontend %s", c.Frontend.StateManagement, c.Frontend.Framework))
	}
	if !c.HasFrontend() && c.Structure == Monorepo {
		errs = append(errs, errors.New("monorepo structure requires a frontend"))
	}

	if !validPort(c.Backend.Port) {
		errs = append(errs, fmt.Errorf("invalid backend port: %d", c.Backend.Port))
	}
	if c.HasFrontend() {
		if !validPort(c.Frontend.Port) {
			errs = append(errs, fmt.Errorf("invalid frontend port: %d", c.Frontend.Port))
		} else if c.Frontend.Port == c.Backend.Port {
			errs = append(errs, fmt.Errorf("backend and frontend cannot share port %d", c.Backend.Port))
		}
	}

	return errors.Join(errs...)
}

func stateAllowed(frontend FrontendFramework, state StateManagement) bool {
	for _, opt := range StateManagementOptions(frontend) {
		if opt.Value == state {
			return true
		}
	}
	return false
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}
