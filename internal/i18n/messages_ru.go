package i18n

// russianMessages contains all Russian translations.
var russianMessages = map[string]string{
	// Menu labels
	"menu.copy_text":       "Скопировать текст",
	"menu.copy_more":       "Скопировать ещё",
	"menu.song_and_artist": "Cкопировать трек и артиста",
	"menu.artist_and_song": "Скопировать артиста и трек",
	"menu.copy_image":      "Ссылка на изображение",
	"menu.export_list":     "Экспорт списка треков в CSV",
	"menu.copy_romaji":     "Скопировать текст (ромадзи)",

	// Notifications
	"notify.copied":   "Скопировано: %s",
	"notify.error":    "Ошибка",
	"notify.exported": "Экспортировано треков: %d в %s (%s)",

	// Settings
	"settings.name":      "Copy to clipboard settings",
	"settings.separator": "Separator between Song name and Artist names",

	// Export prompt
	"prompt.overwrite": "%s уже существует. Перезаписать? [y/N] ",
}
