// Package file stores tclean's settings in a TOML file.
//
// The file lives in the configuration directory ($TCLEAN_HOME, else
// ~/.tclean) as config.toml. Keys are addressed with dot notation and
// written back as nested tables.
package file
