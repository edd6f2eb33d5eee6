package config

// BackendFramework selects the server framework.
type BackendFramework string

const (
	Express BackendFramework = "express"
	Fastify BackendFramework = "fastify"
	NestJS  BackendFramework = "nestjs"
)

// Language selects the backend source language.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
)

// Database selects the backing database.
type Database string

const (
	PostgreSQL Database = "postgresql"
	MySQL      Database = "mysql"
	MongoDB    Database = "mongodb"
	SQLite     Database = "sqlite"
	NoDatabase Database = "none"
)

// ORM selects the data-access library.
type ORM string

const (
	Prisma    ORM = "prisma"
	Sequelize ORM = "sequelize"
	Mongoose  ORM = "mongoose"
	NoORM     ORM = "none"
)

// Auth selects the authentication strategy.
type Auth string

const (
	JWT     Auth = "jwt"
	Session Auth = "session"
	NoAuth  Auth = "none"
)

// Mailing selects the transactional email provider.
type Mailing string

const (
	Nodemailer Mailing = "nodemailer"
	Resend     Mailing = "resend"
	NoMailing  Mailing = "none"
)

// FrontendFramework selects the client framework.
type FrontendFramework string

const (
	Vue        FrontendFramework = "vue"
	React      FrontendFramework = "react"
	NextJS     FrontendFramework = "nextjs"
	NoFrontend FrontendFramework = "none"
)

// Styling selects how the frontend is styled.
type Styling string

const (
	Tailwind Styling = "tailwind"
	CSS      Styling = "css"
	SCSS     Styling = "scss"
)

// StateManagement selects the frontend state library.
type StateManagement string

const (
	Pinia   StateManagement = "pinia"
	Redux   StateManagement = "redux"
	Zustand StateManagement = "zustand"
	NoState StateManagement = "none"
)

// Structure selects how backend and frontend are laid out on disk.
type Structure string

const (
	Monorepo Structure = "monorepo"
	Separate Structure = "separate"
)

// PackageManager selects the Node.js package manager.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
)

func (f BackendFramework) Valid() bool  { return oneOf(f, Express, Fastify, NestJS) }
func (l Language) Valid() bool          { return oneOf(l, JavaScript, TypeScript) }
func (d Database) Valid() bool          { return oneOf(d, PostgreSQL, MySQL, MongoDB, SQLite, NoDatabase) }
func (o ORM) Valid() bool               { return oneOf(o, Prisma, Sequelize, Mongoose, NoORM) }
func (a Auth) Valid() bool              { return oneOf(a, JWT, Session, NoAuth) }
func (m Mailing) Valid() bool           { return oneOf(m, Nodemailer, Resend, NoMailing) }
func (f FrontendFramework) Valid() bool { return oneOf(f, Vue, React, NextJS, NoFrontend) }
func (s Styling) Valid() bool           { return oneOf(s, Tailwind, CSS, SCSS) }
func (s StateManagement) Valid() bool   { return oneOf(s, Pinia, Redux, Zustand, NoState) }
func (s Structure) Valid() bool         { return oneOf(s, Monorepo, Separate) }
func (p PackageManager) Valid() bool    { return oneOf(p, NPM, PNPM, Yarn) }

func oneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
