package nodejs

import (
	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
)

// SetStyling adds the build-time dependencies of a styling choice.
func SetStyling(devDeps *generator.Object, styling config.Styling) {
	switch styling {
	case config.Tailwind:
		SetAll(devDeps,
			"tailwindcss", "^3.4.1",
			"postcss", "^8.4.38",
			"autoprefixer", "^10.4.19",
		)
	case config.SCSS:
		devDeps.Set("sass", "^1.72.0")
	}
}

// ViteCompilerOptions are the bundler-mode compiler options of a Vite app.
func ViteCompilerOptions(jsx string) *generator.Object {
	return generator.NewObject().
		Set("target", "ES2020").
		Set("useDefineForClassFields", true).
		Set("lib", []string{"ES2020", "DOM", "DOM.Iterable"}).
		Set("module", "ESNext").
		Set("skipLibCheck", true).
		Set("moduleResolution", "bundler").
		Set("allowImportingTsExtensions", true).
		Set("resolveJsonModule", true).
		Set("isolatedModules", true).
		Set("noEmit", true).
		Set("jsx", jsx).
		Set("strict", true).
		Set("noUnusedLocals", true).
		Set("noUnusedParameters", true).
		Set("noFallthroughCasesInSwitch", true)
}

// ViteNodeTSConfig is the tsconfig.node.json that type-checks vite.config.ts.
func ViteNodeTSConfig() *generator.Object {
	compilerOptions := generator.NewObject().
		Set("composite", true).
		Set("skipLibCheck", true).
		Set("module", "ESNext").
		Set("moduleResolution", "bundler").
		Set("allowSyntheticDefaultImports", true).
		Set("strict", true)

	return generator.NewObject().
		Set("compilerOptions", compilerOptions).
		Set("include", []string{"vite.config.ts"})
}

// FrontendPrettier is the .prettierrc of the frontend apps.
func FrontendPrettier() *generator.Object {
	return generator.NewObject().
		Set("semi", true).
		Set("singleQuote", true).
		Set("tabWidth", 2)
}
