// Package utils hosts shared infrastructure for the checkup CLI: the Viper
// configuration loader, the zap logger factory, and context accessors used to
// thread resolved configuration metadata through Cobra commands.
package utils
