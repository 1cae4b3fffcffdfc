package entity

type Category struct {
	BaseSimple
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Image       *string `db:"image"`
}
