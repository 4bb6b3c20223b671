package models

const (
	SortByASC  = "asc"
	SortByDESC = "desc"
)
