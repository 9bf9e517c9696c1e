package i18n

// vietnameseMessages contains all Vietnamese translations.
var vietnameseMessages = map[string]string{
	// Menu labels
	"menu.copy_text":       "Sao chép tên",
	"menu.copy_more":       "Sao chép thêm",
	"menu.song_and_artist": "Sao chép tên bài hát & nghệ sĩ",
	"menu.artist_and_song": "Sao chép tên nghệ sĩ & bài hát",
	"menu.copy_image":      "Sao chép liên kết ảnh",
	"menu.export_list":     "Xuất danh sách bài hát ra CSV",
	"menu.copy_romaji":     "Sao chép tên (romaji)",

	// Notifications
	"notify.copied":   "Đã sao chép: %s",
	"notify.error":    "Lỗi",
	"notify.exported": "Đã xuất %d bài hát vào %s (%s)",

	// Settings
	"settings.name":      "Cài đặt Copy to clipboard",
	"settings.separator": "Phân cách giữa tên bài hát và tên nghệ sĩ",

	// Export prompt
	"prompt.overwrite": "%s đã tồn tại. Ghi đè? [y/N] ",
}
