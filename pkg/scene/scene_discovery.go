package scene

import (
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Registry name passed to Create
	DisplayName string // Human readable name
	Description string
}

var descriptions = map[string]string{
	"cover":         "Random field of small spheres around large glass, diffuse and metal spheres",
	"three-spheres": "Diffuse, metal and hollow glass spheres on a yellow ground",
	"horizon":       "One grey diffuse sphere filling the lower half of the frame under the sky",
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns metadata for every built-in scene, sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builders))
	for _, name := range Names() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: descriptions[name],
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// titleCase converts "three-spheres" or "three_spheres" to "Three Spheres"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
