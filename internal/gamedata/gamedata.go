// Package gamedata holds the static content for the three mini-games.
// The rounds themselves run on the clients; the server only hands out the
// material and relays game events between partners.
package gamedata

// StoryTemplate is a fill-in-the-blanks story. Blanks are marked ___ and
// partners take turns filling them.
type StoryTemplate struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Template string `json:"template"`
}

// DrawingTheme is a prompt for the collaborative drawing game.
type DrawingTheme struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Bundle is everything a client needs to run the games.
type Bundle struct {
	Categories     map[string][]string `json:"categories"`
	StoryTemplates []StoryTemplate     `json:"story_templates"`
	DrawingThemes  []DrawingTheme      `json:"drawing_themes"`
}

// Categories maps a who-am-i category to its characters.
var Categories = map[string][]string{
	"animals": {
		"Кот", "Пингвин", "Дельфин", "Ленивец", "Сова",
		"Хомяк", "Жираф", "Панда", "Лиса", "Осьминог",
	},
	"professions": {
		"Космонавт", "Повар", "Детектив", "Учитель", "Пожарный",
		"Программист", "Фокусник", "Археолог",
	},
	"food": {
		"Пицца", "Суши", "Борщ", "Мороженое", "Круассан",
		"Арбуз", "Шашлык", "Оливье",
	},
	"sports": {
		"Футбол", "Шахматы", "Плавание", "Бокс", "Фигурное катание",
		"Кёрлинг",
	},
	"technologies": {
		"Смартфон", "Робот-пылесос", "Тостер", "Дрон", "Телевизор",
		"Микроволновка",
	},
	"brands": {
		"Lego", "IKEA", "Nintendo", "Lamborghini", "Nutella",
	},
	"music": {
		"Джаз", "Рок", "Классика", "Хип-хоп", "Диско",
	},
	"games": {
		"Монополия", "Дженга", "Уно", "Мафия", "Твистер",
	},
}

// StoryTemplates are the collaborative story blanks.
var StoryTemplates = []StoryTemplate{
	{
		ID:    1,
		Title: "Наше первое свидание",
		Template: "Однажды мы встретились в ___. На тебе было ___, и я сразу подумал(а) про ___. " +
			"Мы пошли в ___ и заказали ___. Вечер закончился тем, что мы ___.",
	},
	{
		ID:    2,
		Title: "Путешествие мечты",
		Template: "Мы собрали чемодан, положили туда ___ и поехали в ___. " +
			"По дороге нам встретился ___, который посоветовал нам ___. " +
			"Самым запоминающимся было ___.",
	},
	{
		ID:    3,
		Title: "Наш дом через десять лет",
		Template: "Через десять лет мы живём в ___. Каждое утро мы ___. " +
			"В гостиной у нас стоит ___, а на кухне пахнет ___. " +
			"По выходным мы вместе ___.",
	},
}

// DrawingThemes are the collaborative drawing prompts.
var DrawingThemes = []DrawingTheme{
	{ID: 1, Title: "Наш идеальный выходной"},
	{ID: 2, Title: "Портрет партнёра"},
	{ID: 3, Title: "Место нашей мечты"},
	{ID: 4, Title: "Наше домашнее животное"},
	{ID: 5, Title: "Завтрак в постель"},
}

// Load returns the full game content bundle.
func Load() Bundle {
	return Bundle{
		Categories:     Categories,
		StoryTemplates: StoryTemplates,
		DrawingThemes:  DrawingThemes,
	}
}
