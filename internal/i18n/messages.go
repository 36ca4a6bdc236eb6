package i18n

var english = map[string]string{
	"app-description":                   "Share a virtual room with friends. Watch videos, play with 3D objects, or just hang out.",
	"home.create_room":                  "Create Room",
	"home.install_app":                  "Install App",
	"home.rooms_title":                  "Instantly create rooms",
	"home.rooms_blurb":                  "Share virtual spaces with your friends, co-workers, and communities. When you create a room you'll get a link you can share.",
	"home.communicate_title":            "Communicate naturally",
	"home.communicate_blurb":            "Choose an avatar to represent you, put on your headphones, and jump right in. Your voice carries to the people near you.",
	"home.media_title":                  "An easier way to share media",
	"home.media_blurb":                  "Share content with others in your room by dragging and dropping photos, videos, PDF files, links, and 3D models into your space.",
	"home.featured_rooms":               "Featured Rooms",
	"home.have_code":                    "Have a room code?",
	"home.add_to_discord_1":             "Add",
	"home.add_to_discord_2":             "Our Bot",
	"home.add_to_discord_3":             "to your Discord server",
	"home.members":                      "members",
	"media-browser.favorites-header":    "Favorites",
	"media-browser.search":              "Search...",
	"media-browser.nav_title.rooms":     "Rooms",
	"media-browser.nav_title.favorites": "Favorites",
	"media-browser.nav_title.scenes":    "Scenes",
	"media-browser.facet.public":        "Public",
	"media-browser.facet.active":        "Active",
	"media-browser.facet.featured":      "Featured",
	"media-browser.facet.all":           "All",
	"media-browser.empty":               "Nothing here yet.",
	"media-browser.previous":            "Previous",
	"media-browser.next":                "Next",
	"media-browser.close":               "Close",
}

var portuguese = map[string]string{
	"app-description":                   "Compartilhe uma sala virtual com amigos. Assista vídeos, brinque com objetos 3D ou apenas converse.",
	"home.create_room":                  "Criar Sala",
	"home.install_app":                  "Instalar App",
	"home.rooms_title":                  "Crie salas instantaneamente",
	"home.rooms_blurb":                  "Compartilhe espaços virtuais com amigos, colegas e comunidades. Ao criar uma sala você recebe um link para compartilhar.",
	"home.communicate_title":            "Comunique-se naturalmente",
	"home.communicate_blurb":            "Escolha um avatar, coloque seus fones e entre. Sua voz chega às pessoas perto de você.",
	"home.media_title":                  "Um jeito mais fácil de compartilhar mídia",
	"home.media_blurb":                  "Arraste fotos, vídeos, PDFs, links e modelos 3D para dentro da sua sala.",
	"home.featured_rooms":               "Salas em Destaque",
	"home.have_code":                    "Tem um código de sala?",
	"home.add_to_discord_1":             "Adicione",
	"home.add_to_discord_2":             "Nosso Bot",
	"home.add_to_discord_3":             "ao seu servidor do Discord",
	"home.members":                      "membros",
	"media-browser.favorites-header":    "Favoritos",
	"media-browser.search":              "Buscar...",
	"media-browser.nav_title.rooms":     "Salas",
	"media-browser.nav_title.favorites": "Favoritos",
	"media-browser.nav_title.scenes":    "Cenários",
	"media-browser.facet.public":        "Públicas",
	"media-browser.facet.active":        "Ativas",
	"media-browser.facet.featured":      "Destaques",
	"media-browser.facet.all":           "Todos",
	"media-browser.empty":               "Nada aqui ainda.",
	"media-browser.previous":            "Anterior",
	"media-browser.next":                "Próxima",
	"media-browser.close":               "Fechar",
}
