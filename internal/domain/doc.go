// Package domain contains the core domain model for neuroreport.
//
// The domain is rendering- and persistence-agnostic: it does not depend on YAML parsing,
// html/template, or the filesystem. Infra/adapters map into/from these types.
package domain
