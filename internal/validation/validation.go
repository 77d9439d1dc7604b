// Package validation checks command inputs before any extraction starts.
package validation

import (
	"fmt"
	"os"

	"fjacquet/swift-csv/internal/common"
	"fjacquet/swift-csv/internal/parsererror"
)

// InputFile checks that path names an existing regular file with a .pdf extension.
func InputFile(path string) error {
	if path == "" {
		return &parsererror.ValidationError{FilePath: path, Reason: "input file must be specified"}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &parsererror.ValidationError{FilePath: path, Reason: "file does not exist"}
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a regular file"}
	}
	if !common.IsPDFName(path) {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a PDF file"}
	}
	return nil
}

// InputDir checks that path names an existing directory.
func InputDir(path string) error {
	if path == "" {
		return &parsererror.ValidationError{FilePath: path, Reason: "input directory must be specified"}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &parsererror.ValidationError{FilePath: path, Reason: "directory does not exist"}
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a directory"}
	}
	return nil
}

// OutputDir checks that path is either absent or an existing directory.
func OutputDir(path string) error {
	if path == "" {
		return &parsererror.ValidationError{FilePath: path, Reason: "output directory must be specified"}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return &parsererror.ValidationError{FilePath: path, Reason: "exists and is not a directory"}
	}
	return nil
}
