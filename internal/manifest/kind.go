package manifest

import "fmt"

// Kind selects how a work item is acquired.
type Kind int

const (
	KindInvalid Kind = iota
	KindUnzipped
	KindZipped
	KindUnzippedInstaller
	KindZippedInstaller
	KindGit
	KindPip
)

var kindNames = map[Kind]string{
	KindUnzipped:          "unzipped",
	KindZipped:            "zipped",
	KindUnzippedInstaller: "unzipped-installer",
	KindZippedInstaller:   "zipped-installer",
	KindGit:               "git",
	KindPip:               "pip",
}

// ParseKind maps a manifest kind column to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown kind %q", s)
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsFile reports whether the kind is downloaded over HTTP into the destination tree.
func (k Kind) IsFile() bool {
	switch k {
	case KindUnzipped, KindZipped, KindUnzippedInstaller, KindZippedInstaller:
		return true
	}
	return false
}

// IsZipped reports whether the downloaded artifact must be extracted.
func (k Kind) IsZipped() bool {
	return k == KindZipped || k == KindZippedInstaller
}

// IsInstaller reports whether the artifact needs manual setup after download.
func (k Kind) IsInstaller() bool {
	return k == KindUnzippedInstaller || k == KindZippedInstaller
}
