package version

import "github.com/Masterminds/semver/v3"

// Tag is set at build time with -ldflags "-X github.com/flokiorg/tickethub/pkg/version.Tag=..."
var Tag = "dev"

// Info describes a build tag. Tags that are not semantic versions are
// reported as is and never count as releases.
type Info struct {
	Version string
	Release bool
}

func Parse(tag string) Info {
	v, err := semver.NewVersion(tag)
	if err != nil {
		return Info{Version: tag}
	}
	return Info{
		Version: v.String(),
		Release: v.Prerelease() == "",
	}
}

func Current() Info {
	return Parse(Tag)
}
