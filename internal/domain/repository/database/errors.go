package database

import "errors"

var ErrNotFound = errors.New("wallpaper not found")
