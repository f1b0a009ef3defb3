// Package shell is the interactive front end of the composer.
//
// Commands are read one per line; a leading backslash is accepted and
// ignored so that "\fit 0 3" and "fit 0 3" are the same command. Output is
// indented by four spaces. When writing to a colour terminal, debug lines
// are green, warnings yellow and failures red.
//
// Preview commands write PNG files to a preview directory and print their
// paths rather than opening a viewer.
package shell
