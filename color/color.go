// Package color names the terminal colors used for plain ANSI output.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI code or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiPurple = New("13")
)

// Brand is the MangaDex orange, used for banners and badges.
var Brand = New("#ff6740")

// Cream is a light foreground readable on Brand and Red.
var Cream = New("230")
