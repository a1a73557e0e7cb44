package repository

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Project represents information about a detected project
type Project struct {
	RootPath string // Absolute path to the project root directory
	Type     string // php, git or unknown
	Name     string // Name of the project (extracted from config files)
	Origin   string // Git origin URL
}

// Detector identifies project root folders and provides project-related information
type Detector struct {
	// Common project root marker files/directories
	markers []string
}

// NewDetector creates a new project detector instance
func NewDetector() *Detector {
	return &Detector{
		markers: []string{
			"composer.json", // PHP projects
			".git",          // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given path and returns project info
func (d *Detector) DetectProject(location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
		Name:     filepath.Base(startDir),
	}
	if rootPath == "" {
		return info, nil
	}
	info.RootPath = rootPath
	info.Type = projectType
	switch projectType {
	case "php":
		info.Name = extractComposerProjectName(filepath.Join(rootPath, "composer.json"))
	case "git":
		info.Name = filepath.Base(rootPath)
	}
	info.Origin = extractGitOrigin(rootPath)
	return info, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// extractGitOrigin extracts the origin URL from git config
func extractGitOrigin(root string) string {
	file, err := os.Open(filepath.Join(root, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "[remote \"origin\"]") {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

var composerNameExpr = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)

func extractComposerProjectName(composerPath string) string {
	data, err := os.ReadFile(composerPath)
	if err != nil {
		return filepath.Base(filepath.Dir(composerPath))
	}
	// Simple regex to extract the "name" field from composer.json
	matches := composerNameExpr.FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(filepath.Dir(composerPath))
	}
	return string(matches[1])
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "composer.json":
		return "php"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
