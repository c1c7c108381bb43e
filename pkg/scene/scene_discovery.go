package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON scene (file type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ListSceneFiles scans the scenes directory and returns discovered JSON scenes
func ListSceneFiles() ([]SceneInfo, error) {
	for _, path := range []string{"scenes", "../scenes"} {
		if _, err := os.Stat(path); err == nil {
			return ListSceneFilesIn(path)
		}
	}
	// No scenes directory found
	return []SceneInfo{}, nil
}

// ListSceneFilesIn returns the JSON scenes found in dir, sorted by display name
func ListSceneFilesIn(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneMetadata extracts the descriptive fields of a JSON scene file.
// Missing fields fall back to values derived from the file name.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          fmt.Sprintf("file:%s", nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}
	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
		Variant     string `json:"variant"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("invalid scene file: %w", err)
	}

	if header.Name != "" {
		info.Name = header.Name
	}
	if header.Group != "" {
		info.Group = header.Group
	}
	info.Description = header.Description
	info.Variant = header.Variant

	if info.Variant != "" {
		info.DisplayName = fmt.Sprintf("%s - %s", info.Name, info.Variant)
	} else {
		info.DisplayName = info.Name
	}
	return info, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	var allScenes []SceneInfo
	for _, name := range Names() {
		allScenes = append(allScenes, SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			DisplayName: titleCase(name),
			Description: builtins[name].description,
			Group:       builtInGroup,
			Type:        "builtin",
		})
	}

	fileScenes, err := ListSceneFiles()
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	allScenes = append(allScenes, fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "red-light" -> "Red Light"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	return cases.Title(language.Und).String(strings.Join(strings.Fields(s), " "))
}
