package config

import (
	"slices"
	"strings"
)

var allowedTypes = []string{
	"decimal", "numeric", "float", "real", "money", "smallmoney",
	"bigint", "int", "smallint", "tinyint", "bit",
	"nvarchar", "nchar", "varchar", "char",
	"varbinary", "binary", "uniqueidentifier",
	"datetimeoffset", "datetime2", "datetime", "smalldatetime", "date", "time",
}

// Only these types accept a (size) suffix.
var sizedTypes = []string{
	"decimal", "numeric", "float",
	"nvarchar", "nchar", "varchar", "char",
	"varbinary", "binary",
	"time",
}

// Defaults on these types are dropped from the column definition.
var typesWithoutDefault = []string{"text", "ntext", "binary", "varbinary"}

func IsAllowedType(columnType string) bool {
	return slices.Contains(allowedTypes, strings.ToLower(columnType))
}

func IsSizedType(columnType string) bool {
	return slices.Contains(sizedTypes, strings.ToLower(columnType))
}

func AcceptsDefault(columnType string) bool {
	return !slices.Contains(typesWithoutDefault, strings.ToLower(columnType))
}
