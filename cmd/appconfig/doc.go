// Command appconfig inspects configuration documents and prints their values
// with `$name` references resolved.
//
//	appconfig list config.yaml
//	appconfig get config.yaml database --trace
//	appconfig dump config.toml --resolved --to json
package main
