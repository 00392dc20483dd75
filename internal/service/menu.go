package service

import (
	"github.com/ivanoskov/telefly/internal/firefly"
	"github.com/ivanoskov/telefly/internal/model"
)

const (
	menuColumns = 3
	noneLabel   = "(none)"
	noneID      = "0"
)

// BuildMenu раскладывает варианты по строкам не длиннее трёх кнопок, сохраняя порядок.
// Если withNone, в конец добавляется отдельная строка с вариантом "(none)".
func BuildMenu(options []model.MenuOption, withNone bool) model.Menu {
	var menu model.Menu
	for i, option := range options {
		if i%menuColumns == 0 {
			menu = append(menu, make([]model.MenuOption, 0, menuColumns))
		}
		menu[len(menu)-1] = append(menu[len(menu)-1], option)
	}

	if withNone {
		menu = append(menu, []model.MenuOption{{Label: noneLabel, ID: noneID}})
	}
	return menu
}

func menuOptions(resources []firefly.Resource) []model.MenuOption {
	options := make([]model.MenuOption, 0, len(resources))
	for _, resource := range resources {
		options = append(options, model.MenuOption{Label: resource.Name, ID: resource.ID})
	}
	return options
}
