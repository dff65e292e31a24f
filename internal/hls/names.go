package hls

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"

	"pickleballtv/internal/media"
)

// Synonym names never produced for a real variant.
const (
	Best  = "best"
	Worst = "worst"
)

// variantName prefers resolution height, then bandwidth, then the NAME attribute.
func variantName(v *m3u8.Variant) string {
	if h := height(v.Resolution); h > 0 {
		return fmt.Sprintf("%dp", h)
	}
	if v.Bandwidth > 0 {
		return fmt.Sprintf("%dk", v.Bandwidth/1000)
	}
	if v.Name != "" {
		return strings.ToLower(strings.ReplaceAll(v.Name, " ", "_"))
	}
	return "live"
}

func uniqueName(set media.StreamSet, name string) string {
	if name == Best || name == Worst {
		name += "_stream"
	}
	if _, taken := set[name]; !taken {
		return name
	}
	candidate := name + "_alt"
	for i := 2; ; i++ {
		if _, taken := set[candidate]; !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s_alt%d", name, i)
	}
}

// height extracts H from a "WxH" resolution string.
func height(resolution string) int {
	_, h, ok := strings.Cut(resolution, "x")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(h)
	if err != nil {
		return 0
	}
	return n
}

func less(a, b *media.Stream) bool {
	ha, hb := height(a.Resolution), height(b.Resolution)
	if ha != hb {
		return ha < hb
	}
	if a.Bandwidth != b.Bandwidth {
		return a.Bandwidth < b.Bandwidth
	}
	return a.Name < b.Name
}

// SortedNames returns the real stream names from lowest to highest quality,
// without synonyms.
func SortedNames(set media.StreamSet) []string {
	streams := make([]*media.Stream, 0, len(set))
	for name, st := range set {
		if name == Best || name == Worst {
			continue
		}
		streams = append(streams, st)
	}
	sort.Slice(streams, func(i, j int) bool { return less(streams[i], streams[j]) })

	names := make([]string, len(streams))
	for i, st := range streams {
		names[i] = st.Name
	}
	return names
}

// AddSynonyms points "best" and "worst" at the highest and lowest quality streams.
func AddSynonyms(set media.StreamSet) {
	names := SortedNames(set)
	if len(names) == 0 {
		return
	}
	set[Worst] = set[names[0]]
	set[Best] = set[names[len(names)-1]]
}

// Select returns the stream for name, accepting "best"/"worst".
func Select(set media.StreamSet, name string) (*media.Stream, error) {
	if st, ok := set[name]; ok {
		return st, nil
	}
	return nil, fmt.Errorf("stream %q not available (available: %s)", name, strings.Join(SortedNames(set), ", "))
}
