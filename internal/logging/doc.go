// Package logging bootstraps the zerolog global logger from a level and a
// format and hands out per-component child loggers.
package logging
