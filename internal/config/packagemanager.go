package config

// InstallCommand is the full command a user types to install dependencies.
func (p PackageManager) InstallCommand() string {
	switch p {
	case PNPM:
		return "pnpm install"
	case Yarn:
		return "yarn"
	default:
		return "npm install"
	}
}

// InstallArgs are the arguments passed to the package manager binary for an install.
func (p PackageManager) InstallArgs() []string {
	if p == Yarn {
		return nil
	}
	return []string{"install"}
}

// AddCommand is the command used to add a dependency.
func (p PackageManager) AddCommand(dev bool) string {
	switch p {
	case PNPM:
		if dev {
			return "pnpm add -D"
		}
		return "pnpm add"
	case Yarn:
		if dev {
			return "yarn add -D"
		}
		return "yarn add"
	default:
		if dev {
			return "npm install --save-dev"
		}
		return "npm install"
	}
}

// RunCommand is the prefix for running package.json scripts.
func (p PackageManager) RunCommand() string {
	switch p {
	case PNPM:
		return "pnpm"
	case Yarn:
		return "yarn"
	default:
		return "npm run"
	}
}

// ExecCommand is the prefix for running package binaries.
func (p PackageManager) ExecCommand() string {
	switch p {
	case PNPM:
		return "pnpm exec"
	case Yarn:
		return "yarn"
	default:
		return "npx"
	}
}

// LockFile is the lockfile name the package manager writes.
func (p PackageManager) LockFile() string {
	switch p {
	case PNPM:
		return "pnpm-lock.yaml"
	case Yarn:
		return "yarn.lock"
	default:
		return "package-lock.json"
	}
}
