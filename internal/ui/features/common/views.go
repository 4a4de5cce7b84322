// Package common holds the page shell and small view helpers shared by
// the feature packages.
package common

import "strings"

// datastarSrc is the client runtime driving SSE patches and signals.
const datastarSrc = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// Shell is the view-model for the page frame around feature content.
type Shell struct {
	Title       string
	CurrentPath string
	Dev         bool
}

// NavItem is one top-navigation entry.
type NavItem struct {
	Label string
	Path  string
}

// Nav is the fixed top navigation.
var Nav = []NavItem{
	{Label: "Overview", Path: "/"},
	{Label: "Data Flow", Path: "/sankey"},
	{Label: "Connections", Path: "/connections"},
	{Label: "Review Queue", Path: "/hitl"},
}

// updatesPath is the SSE stream the page loads on open.
func (s Shell) updatesPath() string {
	if s.CurrentPath == "/" {
		return "/updates"
	}
	return s.CurrentPath + "/updates"
}

func navClass(path, current string) string {
	if path == current {
		return "active"
	}
	return ""
}

// Cell is one table cell with an optional CSS class.
type Cell struct {
	Text  string
	Class string
}

// StatusClass maps a backend status string to its CSS class.
func StatusClass(status string) string {
	switch strings.ToLower(status) {
	case "active", "connected", "healthy":
		return "status-active"
	case "error", "fault", "failed":
		return "status-error"
	default:
		return "status-pending"
	}
}
