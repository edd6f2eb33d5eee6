package config

// Choice is a selectable option as shown by the wizard and the list command.
type Choice[T ~string] struct {
	Name        string
	Value       T
	Description string
}

var BackendFrameworks = []Choice[BackendFramework]{
	{"Express.js", Express, "Minimal & flexible Node.js framework"},
	{"Fastify", Fastify, "Fast & low overhead framework"},
	{"NestJS", NestJS, "Progressive Node.js framework (TypeScript)"},
}

var Languages = []Choice[Language]{
	{"TypeScript", TypeScript, "Recommended for production"},
	{"JavaScript", JavaScript, "Quick prototyping"},
}

var Databases = []Choice[Database]{
	{"PostgreSQL", PostgreSQL, "Powerful open-source RDBMS"},
	{"MySQL", MySQL, "Popular open-source RDBMS"},
	{"MongoDB", MongoDB, "NoSQL document database"},
	{"SQLite", SQLite, "Lightweight file-based database"},
	{"None", NoDatabase, "Skip database setup"},
}

var ORMs = []Choice[ORM]{
	{"Prisma", Prisma, "Modern TypeScript ORM"},
	{"Sequelize", Sequelize, "Promise-based ORM for SQL"},
	{"Mongoose", Mongoose, "MongoDB object modeling"},
	{"None", NoORM, "Raw queries only"},
}

var AuthStrategies = []Choice[Auth]{
	{"JWT (JSON Web Token)", JWT, "Stateless authentication"},
	{"Session", Session, "Server-side session storage"},
	{"None", NoAuth, "No authentication"},
}

var MailingProviders = []Choice[Mailing]{
	{"Nodemailer", Nodemailer, "Classic email sending library with SMTP"},
	{"Resend", Resend, "Modern email API for developers"},
	{"None", NoMailing, "No mailing setup"},
}

var FrontendFrameworks = []Choice[FrontendFramework]{
	{"Vue 3", Vue, "Progressive JavaScript framework"},
	{"React", React, "Library for building UIs"},
	{"Next.js", NextJS, "React framework with SSR"},
	{"None (Backend only)", NoFrontend, "Skip frontend setup"},
}

var StylingOptions = []Choice[Styling]{
	{"Tailwind CSS", Tailwind, "Utility-first CSS framework"},
	{"Plain CSS", CSS, "Traditional CSS"},
	{"SCSS/Sass", SCSS, "CSS preprocessor"},
}

var stateManagementVue = []Choice[StateManagement]{
	{"Pinia", Pinia, "Official Vue state management"},
	{"None", NoState, "No state management"},
}

var stateManagementReact = []Choice[StateManagement]{
	{"Redux Toolkit", Redux, "Predictable state container"},
	{"Zustand", Zustand, "Lightweight state management"},
	{"None", NoState, "No state management (use React Context)"},
}

var Structures = []Choice[Structure]{
	{"Monorepo", Monorepo, "Single repo with apps/ folder"},
	{"Separate repos", Separate, "Independent frontend & backend"},
}

var PackageManagers = []Choice[PackageManager]{
	{"pnpm", PNPM, "Fast, disk space efficient (Recommended)"},
	{"npm", NPM, "Default Node.js package manager"},
	{"yarn", Yarn, "Fast, reliable package manager"},
}

// ormDatabaseCompatibility lists the databases each ORM can drive.
var ormDatabaseCompatibility = map[ORM][]Database{
	Prisma:    {PostgreSQL, MySQL, MongoDB, SQLite},
	Sequelize: {PostgreSQL, MySQL, SQLite},
	Mongoose:  {MongoDB},
	NoORM:     {PostgreSQL, MySQL, MongoDB, SQLite, NoDatabase},
}

// CompatibleORMs returns the ORMs usable with db, in display order.
func CompatibleORMs(db Database) []ORM {
	if db == NoDatabase {
		return []ORM{NoORM}
	}

	var orms []ORM
	for _, choice := range ORMs {
		if oneOf(db, ormDatabaseCompatibility[choice.Value]...) {
			orms = append(orms, choice.Value)
		}
	}
	return orms
}

// StateManagementOptions returns the state libraries offered for a frontend.
func StateManagementOptions(frontend FrontendFramework) []Choice[StateManagement] {
	switch frontend {
	case Vue:
		return stateManagementVue
	case React, NextJS:
		return stateManagementReact
	default:
		return []Choice[StateManagement]{{Name: "None", Value: NoState}}
	}
}

// DisplayName looks up the human name for a value, falling back to the value.
func DisplayName[T ~string](choices []Choice[T], v T) string {
	for _, c := range choices {
		if c.Value == v {
			return c.Name
		}
	}
	return string(v)
}
