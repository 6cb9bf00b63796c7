// Package models holds the storage-level records shared by repositories and
// services.
package models
