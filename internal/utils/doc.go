// Package utils hosts shared configuration-loading and logging helpers.
package utils
