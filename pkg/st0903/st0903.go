// Package st0903 contains the Video Moving Target Indicator local set and
// the local sets embedded into it.
//
// Specification: MISB ST0903
package st0903

import (
	"sync"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/klvlength"
)

// Key is the universal key of the VMTI local set.
var Key = klv.MustParseUDSKey("060E2B34020B01010E01030306000000")

// tags of the VMTI local set.
const (
	TagChecksum           klv.Tag = 1
	TagPrecisionTimestamp klv.Tag = 2
	TagSystemName         klv.Tag = 3
	TagVersion            klv.Tag = 4
	TagNumTargetsDetected klv.Tag = 5
	TagNumTargetsReported klv.Tag = 6
	TagFrameNumber        klv.Tag = 7
	TagFrameWidth         klv.Tag = 8
	TagFrameHeight        klv.Tag = 9
	TagSourceSensor       klv.Tag = 10
	TagHorizontalFOV      klv.Tag = 11
	TagVerticalFOV        klv.Tag = 12
	TagMIISID             klv.Tag = 13
	TagVTargetSeries      klv.Tag = 101
	TagAlgorithmSeries    klv.Tag = 102
	TagOntologySeries     klv.Tag = 103
)

// tags of the algorithm local set.
const (
	TagAlgorithmID      klv.Tag = 1
	TagAlgorithmName    klv.Tag = 2
	TagAlgorithmVersion klv.Tag = 3
	TagAlgorithmClass   klv.Tag = 4
	TagAlgorithmNFrames klv.Tag = 5
)

// tags of the ontology local set.
const (
	TagOntologyID       klv.Tag = 1
	TagOntologyParentID klv.Tag = 2
	TagOntologyURI      klv.Tag = 3
	TagOntologyClass    klv.Tag = 4
)

// tags of the VTracker local set.
const (
	TagVTrackerTrackID               klv.Tag = 1
	TagVTrackerDetectionStatus       klv.Tag = 2
	TagVTrackerFirstObservationTime  klv.Tag = 3
	TagVTrackerLatestObservationTime klv.Tag = 4
	TagVTrackerTrackBoundarySeries   klv.Tag = 5
	TagVTrackerAlgorithm             klv.Tag = 6
	TagVTrackerConfidenceLevel       klv.Tag = 7
	TagVTrackerNumTrackPoints        klv.Tag = 8
	TagVTrackerTrackHistorySeries    klv.Tag = 9
	TagVTrackerVelocity              klv.Tag = 10
	TagVTrackerAcceleration          klv.Tag = 11
	TagVTrackerAlgorithmID           klv.Tag = 12
)

// DetectionStatus is the status of the detections of an entity.
type DetectionStatus uint64

// detection statuses.
const (
	DetectionStatusInactive DetectionStatus = 0
	DetectionStatusActive   DetectionStatus = 1
	DetectionStatusDropped  DetectionStatus = 2
)

// String implements fmt.Stringer.
func (s DetectionStatus) String() string {
	switch s {
	case DetectionStatusInactive:
		return "inactive"
	case DetectionStatusActive:
		return "active"
	case DetectionStatusDropped:
		return "dropped"
	}
	return "unknown"
}

func utf8() klv.Format {
	return &klv.StringFormat{Codec: klvcodec.UTF8}
}

func uintN(minimum int, maximum int) klv.Format {
	return &klv.UintFormat{Length: klvlength.MustInterval(minimum, maximum)}
}

var (
	once            sync.Once
	traits          *klv.TraitsLookup
	algorithmTraits *klv.TraitsLookup
	ontologyTraits  *klv.TraitsLookup
	vtrackerTraits  *klv.TraitsLookup
)

func load() {
	once.Do(func() {
		algorithmTraits = klv.NewTraitsLookup([]klv.TagTraits{
			{EnumName: "KLV_0903_ALGORITHM_UNKNOWN", Name: "Unknown"},
			{
				Tag:         TagAlgorithmID,
				EnumName:    "KLV_0903_ALGORITHM_ID",
				Name:        "ID",
				Description: "Identifier of the algorithm, referenced by targets and tracks.",
				Format:      uintN(1, 3),
				Count:       klv.CountOne,
			},
			{
				Tag:         TagAlgorithmName,
				EnumName:    "KLV_0903_ALGORITHM_NAME",
				Name:        "Name",
				Description: "Name of the algorithm.",
				Format:      utf8(),
				Count:       klv.CountOne,
			},
			{
				Tag:         TagAlgorithmVersion,
				EnumName:    "KLV_0903_ALGORITHM_VERSION",
				Name:        "Version",
				Description: "Version of the algorithm.",
				Format:      utf8(),
				Count:       klv.CountOne,
			},
			{
				Tag:         TagAlgorithmClass,
				EnumName:    "KLV_0903_ALGORITHM_CLASS",
				Name:        "Class",
				Description: "Type of the algorithm, for instance 'detector' or 'classifier'.",
				Format:      utf8(),
				Count:       klv.CountOne,
			},
			{
				Tag:         TagAlgorithmNFrames,
				EnumName:    "KLV_0903_ALGORITHM_NUM_FRAMES",
				Name:        "Number of Frames",
				Description: "Number of frames the algorithm operates on.",
				Format:      uintN(1, 3),
				Count:       klv.CountOptional,
			},
		})

		ontologyTraits = klv.NewTraitsLookup([]klv.TagTraits{
			{EnumName: "KLV_0903_ONTOLOGY_UNKNOWN", Name: "Unknown"},
			{
				Tag:         TagOntologyID,
				EnumName:    "KLV_0903_ONTOLOGY_ID",
				Name:        "ID",
				Description: "Identifier of the ontology, referenced by objects.",
				Format:      uintN(1, 3),
				Count:       klv.CountOne,
			},
			{
				Tag:         TagOntologyParentID,
				EnumName:    "KLV_0903_ONTOLOGY_PARENT_ID",
				Name:        "Parent ID",
				Description: "Identifier of the parent ontology.",
				Format:      uintN(1, 3),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagOntologyURI,
				EnumName:    "KLV_0903_ONTOLOGY_ONTOLOGY",
				Name:        "Ontology",
				Description: "Uniform resource identifier of the ontology.",
				Format:      utf8(),
				Count:       klv.CountOne,
			},
			{
				Tag:         TagOntologyClass,
				EnumName:    "KLV_0903_ONTOLOGY_CLASS",
				Name:        "Class",
				Description: "Class of the ontology.",
				Format:      utf8(),
				Count:       klv.CountOne,
			},
		})

		vtrackerTraits = klv.NewTraitsLookup([]klv.TagTraits{
			{EnumName: "KLV_0903_VTRACKER_UNKNOWN", Name: "Unknown"},
			{
				Tag:         TagVTrackerTrackID,
				EnumName:    "KLV_0903_VTRACKER_TRACK_ID",
				Name:        "Track ID",
				Description: "A unique identifier (UUID) for the track.",
				Format:      &klv.UUIDFormat{},
				Count:       klv.CountOne,
			},
			{
				Tag:         TagVTrackerDetectionStatus,
				EnumName:    "KLV_0903_VTRACKER_DETECTION_STATUS",
				Name:        "Detection Status",
				Description: "Current status of the detections of the entity.",
				Format:      &klv.UintFormat{Length: klvlength.MustFixed(1)},
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerFirstObservationTime,
				EnumName:    "KLV_0903_VTRACKER_FIRST_OBSERVATION_TIME",
				Name:        "First Observation Time",
				Description: "Time of the first observation of the entity, in microseconds since the epoch.",
				Format:      &klv.UintFormat{Length: klvlength.MustFixed(8)},
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerLatestObservationTime,
				EnumName:    "KLV_0903_VTRACKER_LATEST_OBSERVATION_TIME",
				Name:        "Latest Observation Time",
				Description: "Time of the most recent observation of the entity, in microseconds since the epoch.",
				Format:      &klv.UintFormat{Length: klvlength.MustFixed(8)},
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerTrackBoundarySeries,
				EnumName:    "KLV_0903_VTRACKER_TRACK_BOUNDARY_SERIES",
				Name:        "Track Boundary Series",
				Description: "Vertices enclosing the full extent of the detections of the entity.",
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerAlgorithm,
				EnumName:    "KLV_0903_VTRACKER_ALGORITHM",
				Name:        "Algorithm",
				Description: "Name of the algorithm used to create or maintain the track.",
				Format:      utf8(),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerConfidenceLevel,
				EnumName:    "KLV_0903_VTRACKER_CONFIDENCE_LEVEL",
				Name:        "Confidence Level",
				Description: "Certainty of the movement of the entity, from 0 to 100.",
				Format:      &klv.UintFormat{Length: klvlength.MustFixed(1)},
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerNumTrackPoints,
				EnumName:    "KLV_0903_VTRACKER_NUM_TRACK_POINTS",
				Name:        "Number of Track Points",
				Description: "Number of points in the track history series.",
				Format:      uintN(1, 2),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerTrackHistorySeries,
				EnumName:    "KLV_0903_VTRACKER_TRACK_HISTORY_SERIES",
				Name:        "Track History Series",
				Description: "Locations of the detections of the entity.",
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerVelocity,
				EnumName:    "KLV_0903_VTRACKER_VELOCITY",
				Name:        "Velocity",
				Description: "Velocity of the entity at the time of last observation.",
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerAcceleration,
				EnumName:    "KLV_0903_VTRACKER_ACCELERATION",
				Name:        "Acceleration",
				Description: "Acceleration of the entity at the time of last observation.",
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTrackerAlgorithmID,
				EnumName:    "KLV_0903_VTRACKER_ALGORITHM_ID",
				Name:        "Algorithm ID",
				Description: "Identifier of the algorithm in the algorithm series which tracked the entity.",
				Format:      uintN(1, 3),
				Count:       klv.CountOptional,
			},
		})

		traits = klv.NewTraitsLookup([]klv.TagTraits{
			{EnumName: "KLV_0903_UNKNOWN", Name: "Unknown"},
			{
				Tag:         TagChecksum,
				EnumName:    "KLV_0903_CHECKSUM",
				Name:        "Checksum",
				Description: "Checksum used to detect errors within a packet.",
				Format:      &klv.UintFormat{Length: klvlength.MustFixed(2)},
				Count:       klv.TagCountRange{},
			},
			{
				Tag:         TagPrecisionTimestamp,
				EnumName:    "KLV_0903_PRECISION_TIMESTAMP",
				Name:        "Precision Timestamp",
				Description: "Microseconds since January 1st, 1970.",
				Format:      &klv.UintFormat{Length: klvlength.MustFixed(8)},
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagSystemName,
				EnumName:    "KLV_0903_VMTI_SYSTEM_NAME",
				Name:        "VMTI System Name",
				Description: "Name of the system producing the targets.",
				Format:      utf8(),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVersion,
				EnumName:    "KLV_0903_VERSION",
				Name:        "VMTI LS Version",
				Description: "Version of the standard used to encode the set.",
				Format:      uintN(1, 2),
				Count:       klv.CountOne,
			},
			{
				Tag:         TagNumTargetsDetected,
				EnumName:    "KLV_0903_NUM_TARGETS_DETECTED",
				Name:        "Total Number of Targets Detected",
				Description: "Total number of targets detected in a frame.",
				Format:      uintN(1, 3),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagNumTargetsReported,
				EnumName:    "KLV_0903_NUM_TARGETS_REPORTED",
				Name:        "Number of Targets Reported",
				Description: "Number of targets reported after culling.",
				Format:      uintN(1, 3),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagFrameNumber,
				EnumName:    "KLV_0903_FRAME_NUMBER",
				Name:        "Frame Number",
				Description: "Frame number identifying detected targets.",
				Format:      uintN(1, 3),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagFrameWidth,
				EnumName:    "KLV_0903_FRAME_WIDTH",
				Name:        "Frame Width",
				Description: "Width of the frame in pixels.",
				Format:      uintN(1, 3),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagFrameHeight,
				EnumName:    "KLV_0903_FRAME_HEIGHT",
				Name:        "Frame Height",
				Description: "Height of the frame in pixels.",
				Format:      uintN(1, 3),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagSourceSensor,
				EnumName:    "KLV_0903_SOURCE_SENSOR",
				Name:        "VMTI Source Sensor",
				Description: "Name of the source sensor, for instance 'EO Nose'.",
				Format:      utf8(),
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagHorizontalFOV,
				EnumName:    "KLV_0903_HORIZONTAL_FOV",
				Name:        "VMTI Horizontal FOV",
				Description: "Horizontal field of view of the sensor, in degrees.",
				Format:      &klv.IMAPFormat{Min: 0, Max: 180, Length: klvlength.MustFixed(2)},
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVerticalFOV,
				EnumName:    "KLV_0903_VERTICAL_FOV",
				Name:        "VMTI Vertical FOV",
				Description: "Vertical field of view of the sensor, in degrees.",
				Format:      &klv.IMAPFormat{Min: 0, Max: 180, Length: klvlength.MustFixed(2)},
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagMIISID,
				EnumName:    "KLV_0903_MIIS_ID",
				Name:        "MIIS ID",
				Description: "Motion imagery identification system core identifier.",
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagVTargetSeries,
				EnumName:    "KLV_0903_VTARGET_SERIES",
				Name:        "VTarget Series",
				Description: "A series of VTarget packs.",
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagAlgorithmSeries,
				EnumName:    "KLV_0903_ALGORITHM_SERIES",
				Name:        "Algorithm Series",
				Description: "A series of algorithm local sets.",
				Format:      &klv.SeriesFormat{Element: klv.NewLocalSetFormat("ST0903 algorithm", algorithmTraits)},
				Count:       klv.CountOptional,
			},
			{
				Tag:         TagOntologySeries,
				EnumName:    "KLV_0903_ONTOLOGY_SERIES",
				Name:        "Ontology Series",
				Description: "A series of ontology local sets.",
				Format:      &klv.SeriesFormat{Element: klv.NewLocalSetFormat("ST0903 ontology", ontologyTraits)},
				Count:       klv.CountOptional,
			},
		})
	})
}

// Traits returns the traits of the VMTI local set.
func Traits() *klv.TraitsLookup {
	load()
	return traits
}

// AlgorithmTraits returns the traits of the algorithm local set.
func AlgorithmTraits() *klv.TraitsLookup {
	load()
	return algorithmTraits
}

// OntologyTraits returns the traits of the ontology local set.
func OntologyTraits() *klv.TraitsLookup {
	load()
	return ontologyTraits
}

// VTrackerTraits returns the traits of the VTracker local set.
func VTrackerTraits() *klv.TraitsLookup {
	load()
	return vtrackerTraits
}

// Format returns the format of the VMTI local set.
func Format() *klv.LocalSetFormat {
	return &klv.LocalSetFormat{
		Name:     "ST0903",
		Lookup:   Traits,
		Checksum: klv.RunningSum16Checksum(byte(TagChecksum), 2),
	}
}

// VTrackerFormat returns the format of the VTracker local set.
func VTrackerFormat() *klv.LocalSetFormat {
	return &klv.LocalSetFormat{
		Name:   "ST0903 VTracker",
		Lookup: VTrackerTraits,
	}
}
