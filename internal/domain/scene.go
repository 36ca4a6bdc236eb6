package domain

// Scene is the environment a hub is created from.
type Scene struct {
	ID            string `json:"id" mapstructure:"id"`
	Name          string `json:"name" mapstructure:"name"`
	Description   string `json:"description,omitempty" mapstructure:"description"`
	ScreenshotURL string `json:"screenshot_url" mapstructure:"screenshot_url"`
	Featured      bool   `json:"featured" mapstructure:"featured"`
}

const SceneEntryType = "scene"
