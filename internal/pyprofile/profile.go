// Package pyprofile implements the project ecosystem profile: a
// best-effort scan for Python web/test frameworks referenced in
// manifest files, surfaced alongside the quality report as informational
// metadata only (it never affects a score). Import statements in source
// files are not scanned.
//
// Adapted from _examples/kodehash-katichai/internal/context/detector.go
// and framework.go, trimmed from their many-language framework registry
// down to the Python ecosystem this analyzer actually sees.
package pyprofile

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Framework names this profiler recognizes, mirroring the original
// multi-language FrameworkType registry but scoped to Python.
const (
	Django     = "Django"
	Flask      = "Flask"
	FastAPI    = "FastAPI"
	Pytest     = "pytest"
	SQLAlchemy = "SQLAlchemy"
	Celery     = "Celery"
	NumPy      = "NumPy"
	Pandas     = "Pandas"
)

// pythonFrameworkMarkers maps a requirements.txt/pyproject.toml package
// name (lowercased) to the Framework constant it signals.
var pythonFrameworkMarkers = map[string]string{
	"django":      Django,
	"flask":       Flask,
	"fastapi":     FastAPI,
	"pytest":      Pytest,
	"sqlalchemy":  SQLAlchemy,
	"celery":      Celery,
	"numpy":       NumPy,
	"pandas":      Pandas,
}

// Profile is the detected ecosystem summary for one project root.
type Profile struct {
	Root           string   `json:"root"`
	Frameworks     []string `json:"frameworks"`
	ManifestFiles  []string `json:"manifest_files"`
}

// Detect scans root's manifest files (requirements.txt, pyproject.toml,
// setup.py, Pipfile) for recognized Python framework markers.
func Detect(root string) (Profile, error) {
	profile := Profile{Root: root}
	found := map[string]bool{}

	manifests := []string{"requirements.txt", "requirements-dev.txt", "pyproject.toml", "setup.py", "Pipfile"}
	for _, name := range manifests {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		profile.ManifestFiles = append(profile.ManifestFiles, name)
		markers, err := scanManifest(path)
		if err != nil {
			continue
		}
		for _, m := range markers {
			found[m] = true
		}
	}

	for _, name := range []string{Django, Flask, FastAPI, Pytest, SQLAlchemy, Celery, NumPy, Pandas} {
		if found[name] {
			profile.Frameworks = append(profile.Frameworks, name)
		}
	}

	return profile, nil
}

// scanManifest reads path line by line and reports every recognized
// framework marker found in it (a simple substring match against each
// lowercased line — manifests list dependencies one per line in every
// format this profiler targets).
func scanManifest(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var found []string
	seen := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for marker, framework := range pythonFrameworkMarkers {
			if seen[framework] {
				continue
			}
			if strings.Contains(line, marker) {
				found = append(found, framework)
				seen[framework] = true
			}
		}
	}
	return found, scanner.Err()
}
