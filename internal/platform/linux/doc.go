// Package linux provides KDE Plasma platform implementations. It registers
// itself for GOOS "linux" when imported.
package linux
