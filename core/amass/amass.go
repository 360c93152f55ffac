// Package amass knows how the AMASS download portal addresses per-dataset
// archives: the dataset catalog, body-model and gender subdirectories, the
// download URL and the local archive filename.
package amass

import (
	"fmt"
	"slices"

	"github.com/duke-git/lancet/v2/slice"
)

const (
	// BaseURL is the AMASS portal; downloads go through the shared
	// download.php endpoint of the MPI file host.
	BaseURL = "https://amass.is.tue.mpg.de/"
	// DownloadEndpoint serves the archives once a portal session exists.
	DownloadEndpoint = "https://download.is.tue.mpg.de/download.php"

	// UserAgent is sent with every download request. The portal rejects
	// requests without a browser user agent.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// ArchiveSuffix is the compression format the portal serves.
	ArchiveSuffix = ".tar.bz2"
)

// datasets is the catalog of archives downloadable from the portal.
var datasets = []string{
	"ACCAD",
	"BMLhandball",
	"BMLmovi",
	"BMLrub",
	"CMU",
	"CNRS",
	"DanceDB",
	"DFaust",
	"EKUT",
	"EyesJapanDataset",
	"GRAB",
	"HDM05",
	"HUMAN4D",
	"HumanEva",
	"KIT",
	"MoSh",
	"PosePrior",
	"SFU",
	"SOMA",
	"SSM",
	"TCDHands",
	"TotalCapture",
	"Transitions",
	"WEIZMANN",
}

// Datasets returns the known dataset catalog in listing order.
func Datasets() []string {
	return slices.Clone(datasets)
}

// IsKnownDataset reports whether name is in the catalog. Unknown names are
// still downloadable; callers use this only to warn.
func IsKnownDataset(name string) bool {
	return slice.Contain(datasets, name)
}

// ModelDir maps a body-model selection to its remote subdirectory.
// Unrecognized values fall back to SMPL-H.
func ModelDir(bodyModel string) string {
	switch bodyModel {
	case "SMPL-H":
		return "smplh"
	case "SMPL-X":
		return "smplx"
	default:
		return "smplh"
	}
}

// GenderDir maps a gender selection to its remote subdirectory. The portal
// splits archives into gender_specific (male/female) and neutral trees.
func GenderDir(gender string) string {
	switch gender {
	case "male", "female":
		return "gender_specific"
	default:
		return "neutral"
	}
}

// RemotePath builds the sfile query value for a dataset archive.
func RemotePath(dataset, bodyModel, gender string) string {
	return fmt.Sprintf("amass_per_dataset/%s/%s/mosh_results/%s%s",
		ModelDir(bodyModel), GenderDir(gender), dataset, ArchiveSuffix)
}

// DownloadURL builds the full download URL for a dataset archive. The sfile
// path is deliberately left unescaped to match what the portal expects.
func DownloadURL(dataset, bodyModel, gender string) string {
	return DownloadURLFrom(DownloadEndpoint, dataset, bodyModel, gender)
}

// DownloadURLFrom is DownloadURL against a non-default endpoint.
func DownloadURLFrom(endpoint, dataset, bodyModel, gender string) string {
	return fmt.Sprintf("%s?domain=amass&resume=1&sfile=%s",
		endpoint, RemotePath(dataset, bodyModel, gender))
}

// LocalFilename is the deterministic on-disk name for a dataset archive,
// encoding dataset, model directory and gender.
func LocalFilename(dataset, bodyModel, gender string) string {
	return fmt.Sprintf("%s_%s_%s%s", dataset, ModelDir(bodyModel), gender, ArchiveSuffix)
}
