package i18n

// englishMessages contains all English translations.
var englishMessages = map[string]string{
	// Menu labels
	"menu.copy_text":       "Copy Text",
	"menu.copy_more":       "Copy more",
	"menu.song_and_artist": "Copy Song & Artist names",
	"menu.artist_and_song": "Copy Artist & Song names",
	"menu.copy_image":      "Copy image link",
	"menu.export_list":     "Export song list to CSV",
	"menu.copy_romaji":     "Copy Text (romaji)",

	// Notifications
	"notify.copied":   "Copied: %s",
	"notify.error":    "Error",
	"notify.exported": "Exported %d tracks to %s (%s)",

	// Settings
	"settings.name":      "Copy to clipboard settings",
	"settings.separator": "Separator between Song name and Artist names",

	// Export prompt
	"prompt.overwrite": "%s already exists. Overwrite? [y/N] ",
}
