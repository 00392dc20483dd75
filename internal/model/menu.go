package model

// MenuOption - одна кнопка меню: подпись и непрозрачный ID из Firefly III
type MenuOption struct {
	Label string
	ID    string
}

// Menu - сетка кнопок по строкам
type Menu [][]MenuOption
