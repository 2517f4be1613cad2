// Package st0601 contains the UAS Datalink local set.
//
// Specification: MISB ST0601
package st0601

import (
	"sync"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/klvlength"
	"github.com/bluenviron/goklv/pkg/st0102"
	"github.com/bluenviron/goklv/pkg/st0903"
	"github.com/bluenviron/goklv/pkg/st1607"
)

// Key is the universal key of the UAS Datalink local set.
var Key = klv.MustParseUDSKey("060E2B34020B01010E01030101000000")

// tags.
const (
	TagChecksum                     klv.Tag = 1
	TagPrecisionTimestamp           klv.Tag = 2
	TagMissionID                    klv.Tag = 3
	TagPlatformTailNumber           klv.Tag = 4
	TagPlatformHeadingAngle         klv.Tag = 5
	TagPlatformPitchAngle           klv.Tag = 6
	TagPlatformRollAngle            klv.Tag = 7
	TagPlatformTrueAirspeed         klv.Tag = 8
	TagPlatformIndicatedAirspeed    klv.Tag = 9
	TagPlatformDesignation          klv.Tag = 10
	TagImageSourceSensor            klv.Tag = 11
	TagImageCoordinateSystem        klv.Tag = 12
	TagSensorLatitude               klv.Tag = 13
	TagSensorLongitude              klv.Tag = 14
	TagSensorTrueAltitude           klv.Tag = 15
	TagSensorHorizontalFOV          klv.Tag = 16
	TagSensorVerticalFOV            klv.Tag = 17
	TagSensorRelativeAzimuthAngle   klv.Tag = 18
	TagSensorRelativeElevationAngle klv.Tag = 19
	TagSensorRelativeRollAngle      klv.Tag = 20
	TagSlantRange                   klv.Tag = 21
	TagTargetWidth                  klv.Tag = 22
	TagFrameCenterLatitude          klv.Tag = 23
	TagFrameCenterLongitude         klv.Tag = 24
	TagFrameCenterElevation         klv.Tag = 25
	TagOffsetCornerLatitudePoint1   klv.Tag = 26
	TagOffsetCornerLongitudePoint1  klv.Tag = 27
	TagOffsetCornerLatitudePoint2   klv.Tag = 28
	TagOffsetCornerLongitudePoint2  klv.Tag = 29
	TagOffsetCornerLatitudePoint3   klv.Tag = 30
	TagOffsetCornerLongitudePoint3  klv.Tag = 31
	TagOffsetCornerLatitudePoint4   klv.Tag = 32
	TagOffsetCornerLongitudePoint4  klv.Tag = 33
	TagIcingDetected                klv.Tag = 34
	TagWindDirection                klv.Tag = 35
	TagWindSpeed                    klv.Tag = 36
	TagStaticPressure               klv.Tag = 37
	TagDensityAltitude              klv.Tag = 38
	TagOutsideAirTemperature        klv.Tag = 39
	TagTargetLocationLatitude       klv.Tag = 40
	TagTargetLocationLongitude      klv.Tag = 41
	TagTargetLocationElevation      klv.Tag = 42
	TagTargetTrackGateWidth         klv.Tag = 43
	TagTargetTrackGateHeight        klv.Tag = 44
	TagTargetErrorEstimateCE90      klv.Tag = 45
	TagTargetErrorEstimateLE90      klv.Tag = 46
	TagGenericFlagData              klv.Tag = 47
	TagSecurityLocalSet             klv.Tag = 48
	TagPlatformGroundSpeed          klv.Tag = 56
	TagGroundRange                  klv.Tag = 57
	TagPlatformCallSign             klv.Tag = 59
	TagVersionNumber                klv.Tag = 65
	TagEventStartTime               klv.Tag = 72
	TagVMTILocalSet                 klv.Tag = 74
	TagMIISCoreIdentifier           klv.Tag = 94
	TagSegmentLocalSet              klv.Tag = 100
	TagAmendLocalSet                klv.Tag = 101
)

func str() klv.Format {
	return &klv.StringFormat{Codec: klvcodec.ASCII, Length: klvlength.MustInterval(1, 127)}
}

func uflint(minimum float64, maximum float64, length int) klv.Format {
	return &klv.UFlintFormat{Min: minimum, Max: maximum, Length: klvlength.MustFixed(length)}
}

func sflint(bound float64, length int) klv.Format {
	return &klv.SFlintFormat{Min: -bound, Max: bound, Length: klvlength.MustFixed(length)}
}

var (
	traitsOnce sync.Once
	traits     *klv.TraitsLookup
)

func table() []klv.TagTraits {
	return []klv.TagTraits{
		{
			EnumName:    "KLV_0601_UNKNOWN",
			Name:        "Unknown Tag",
			Description: "Unknown tag.",
		},
		{
			Tag:         TagChecksum,
			EnumName:    "KLV_0601_CHECKSUM",
			Name:        "Checksum",
			Description: "Checksum used to detect errors within a packet.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(2)},
			Count:       klv.TagCountRange{},
		},
		{
			Tag:         TagPrecisionTimestamp,
			EnumName:    "KLV_0601_PRECISION_TIMESTAMP",
			Name:        "Precision Timestamp",
			Description: "Timestamp for all metadata in the set, in microseconds since the epoch.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(8)},
			Count:       klv.CountOne,
		},
		{
			Tag:         TagMissionID,
			EnumName:    "KLV_0601_MISSION_ID",
			Name:        "Mission ID",
			Description: "Descriptive mission identifier to distinguish an event or sortie.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagPlatformTailNumber,
			EnumName:    "KLV_0601_PLATFORM_TAIL_NUMBER",
			Name:        "Platform Tail Number",
			Description: "Identifier of platform as posted.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagPlatformHeadingAngle,
			EnumName:    "KLV_0601_PLATFORM_HEADING_ANGLE",
			Name:        "Platform Heading Angle",
			Description: "Aircraft heading angle, relative to true north, in degrees.",
			Format:      uflint(0, 360, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagPlatformPitchAngle,
			EnumName:    "KLV_0601_PLATFORM_PITCH_ANGLE",
			Name:        "Platform Pitch Angle",
			Description: "Aircraft pitch angle, positive when the nose is above the horizon, in degrees.",
			Format:      sflint(20, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagPlatformRollAngle,
			EnumName:    "KLV_0601_PLATFORM_ROLL_ANGLE",
			Name:        "Platform Roll Angle",
			Description: "Aircraft roll angle, positive when the right wing is lowered, in degrees.",
			Format:      sflint(50, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagPlatformTrueAirspeed,
			EnumName:    "KLV_0601_PLATFORM_TRUE_AIRSPEED",
			Name:        "Platform True Airspeed",
			Description: "True airspeed of the platform, in meters per second.",
			Format:      uflint(0, 255, 1),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagPlatformIndicatedAirspeed,
			EnumName:    "KLV_0601_PLATFORM_INDICATED_AIRSPEED",
			Name:        "Platform Indicated Airspeed",
			Description: "Indicated airspeed of the platform, in meters per second.",
			Format:      uflint(0, 255, 1),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagPlatformDesignation,
			EnumName:    "KLV_0601_PLATFORM_DESIGNATION",
			Name:        "Platform Designation",
			Description: "Model name for the platform, for instance 'Predator'.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagImageSourceSensor,
			EnumName:    "KLV_0601_IMAGE_SOURCE_SENSOR",
			Name:        "Image Source Sensor",
			Description: "Name of the currently active sensor, for instance 'EO Nose'.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagImageCoordinateSystem,
			EnumName:    "KLV_0601_IMAGE_COORDINATE_SYSTEM",
			Name:        "Image Coordinate System",
			Description: "Name of the image coordinate system.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSensorLatitude,
			EnumName:    "KLV_0601_SENSOR_LATITUDE",
			Name:        "Sensor Latitude",
			Description: "Latitude of the sensor, in degrees.",
			Format:      sflint(90, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSensorLongitude,
			EnumName:    "KLV_0601_SENSOR_LONGITUDE",
			Name:        "Sensor Longitude",
			Description: "Longitude of the sensor, in degrees.",
			Format:      sflint(180, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSensorTrueAltitude,
			EnumName:    "KLV_0601_SENSOR_TRUE_ALTITUDE",
			Name:        "Sensor True Altitude",
			Description: "Altitude of the sensor above mean sea level, in meters.",
			Format:      uflint(-900, 19000, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSensorHorizontalFOV,
			EnumName:    "KLV_0601_SENSOR_HORIZONTAL_FOV",
			Name:        "Sensor Horizontal Field of View",
			Description: "Horizontal field of view of the sensor, in degrees.",
			Format:      uflint(0, 180, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSensorVerticalFOV,
			EnumName:    "KLV_0601_SENSOR_VERTICAL_FOV",
			Name:        "Sensor Vertical Field of View",
			Description: "Vertical field of view of the sensor, in degrees.",
			Format:      uflint(0, 180, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSensorRelativeAzimuthAngle,
			EnumName:    "KLV_0601_SENSOR_RELATIVE_AZIMUTH_ANGLE",
			Name:        "Sensor Relative Azimuth Angle",
			Description: "Azimuth of the sensor relative to the platform, in degrees.",
			Format:      uflint(0, 360, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSensorRelativeElevationAngle,
			EnumName:    "KLV_0601_SENSOR_RELATIVE_ELEVATION_ANGLE",
			Name:        "Sensor Relative Elevation Angle",
			Description: "Elevation of the sensor relative to the platform, in degrees.",
			Format:      sflint(180, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSensorRelativeRollAngle,
			EnumName:    "KLV_0601_SENSOR_RELATIVE_ROLL_ANGLE",
			Name:        "Sensor Relative Roll Angle",
			Description: "Roll of the sensor relative to the platform, in degrees.",
			Format:      uflint(0, 360, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSlantRange,
			EnumName:    "KLV_0601_SLANT_RANGE",
			Name:        "Slant Range",
			Description: "Distance between the sensor and the center of the image, in meters.",
			Format:      uflint(0, 5e6, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagTargetWidth,
			EnumName:    "KLV_0601_TARGET_WIDTH",
			Name:        "Target Width",
			Description: "Width of the imaged area along the horizontal center line, in meters.",
			Format:      uflint(0, 1e4, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagFrameCenterLatitude,
			EnumName:    "KLV_0601_FRAME_CENTER_LATITUDE",
			Name:        "Frame Center Latitude",
			Description: "Latitude of the center of the image, in degrees.",
			Format:      sflint(90, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagFrameCenterLongitude,
			EnumName:    "KLV_0601_FRAME_CENTER_LONGITUDE",
			Name:        "Frame Center Longitude",
			Description: "Longitude of the center of the image, in degrees.",
			Format:      sflint(180, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagFrameCenterElevation,
			EnumName:    "KLV_0601_FRAME_CENTER_ELEVATION",
			Name:        "Frame Center Elevation",
			Description: "Altitude of the center of the image above mean sea level, in meters.",
			Format:      uflint(-900, 19000, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagOffsetCornerLatitudePoint1,
			EnumName:    "KLV_0601_OFFSET_CORNER_LATITUDE_POINT_1",
			Name:        "Offset Corner Latitude Point 1",
			Description: "Latitude offset of image corner 1 from the frame center, in degrees.",
			Format:      sflint(0.075, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagOffsetCornerLongitudePoint1,
			EnumName:    "KLV_0601_OFFSET_CORNER_LONGITUDE_POINT_1",
			Name:        "Offset Corner Longitude Point 1",
			Description: "Longitude offset of image corner 1 from the frame center, in degrees.",
			Format:      sflint(0.075, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagOffsetCornerLatitudePoint2,
			EnumName:    "KLV_0601_OFFSET_CORNER_LATITUDE_POINT_2",
			Name:        "Offset Corner Latitude Point 2",
			Description: "Latitude offset of image corner 2 from the frame center, in degrees.",
			Format:      sflint(0.075, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagOffsetCornerLongitudePoint2,
			EnumName:    "KLV_0601_OFFSET_CORNER_LONGITUDE_POINT_2",
			Name:        "Offset Corner Longitude Point 2",
			Description: "Longitude offset of image corner 2 from the frame center, in degrees.",
			Format:      sflint(0.075, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagOffsetCornerLatitudePoint3,
			EnumName:    "KLV_0601_OFFSET_CORNER_LATITUDE_POINT_3",
			Name:        "Offset Corner Latitude Point 3",
			Description: "Latitude offset of image corner 3 from the frame center, in degrees.",
			Format:      sflint(0.075, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagOffsetCornerLongitudePoint3,
			EnumName:    "KLV_0601_OFFSET_CORNER_LONGITUDE_POINT_3",
			Name:        "Offset Corner Longitude Point 3",
			Description: "Longitude offset of image corner 3 from the frame center, in degrees.",
			Format:      sflint(0.075, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagOffsetCornerLatitudePoint4,
			EnumName:    "KLV_0601_OFFSET_CORNER_LATITUDE_POINT_4",
			Name:        "Offset Corner Latitude Point 4",
			Description: "Latitude offset of image corner 4 from the frame center, in degrees.",
			Format:      sflint(0.075, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagOffsetCornerLongitudePoint4,
			EnumName:    "KLV_0601_OFFSET_CORNER_LONGITUDE_POINT_4",
			Name:        "Offset Corner Longitude Point 4",
			Description: "Longitude offset of image corner 4 from the frame center, in degrees.",
			Format:      sflint(0.075, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagIcingDetected,
			EnumName:    "KLV_0601_ICING_DETECTED",
			Name:        "Icing Detected",
			Description: "Whether icing was detected on the platform.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(1)},
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagWindDirection,
			EnumName:    "KLV_0601_WIND_DIRECTION",
			Name:        "Wind Direction",
			Description: "Direction the wind is coming from, relative to true north, in degrees.",
			Format:      uflint(0, 360, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagWindSpeed,
			EnumName:    "KLV_0601_WIND_SPEED",
			Name:        "Wind Speed",
			Description: "Speed of the wind, in meters per second.",
			Format:      uflint(0, 100, 1),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagStaticPressure,
			EnumName:    "KLV_0601_STATIC_PRESSURE",
			Name:        "Static Pressure",
			Description: "Static pressure at the platform, in millibars.",
			Format:      uflint(0, 5000, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagDensityAltitude,
			EnumName:    "KLV_0601_DENSITY_ALTITUDE",
			Name:        "Density Altitude",
			Description: "Density altitude at the platform, in meters.",
			Format:      uflint(-900, 19000, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagOutsideAirTemperature,
			EnumName:    "KLV_0601_OUTSIDE_AIR_TEMPERATURE",
			Name:        "Outside Air Temperature",
			Description: "Temperature outside of the platform, in degrees Celsius.",
			Format:      &klv.IntFormat{Length: klvlength.MustFixed(1)},
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagTargetLocationLatitude,
			EnumName:    "KLV_0601_TARGET_LOCATION_LATITUDE",
			Name:        "Target Location Latitude",
			Description: "Latitude of the tracked target, in degrees.",
			Format:      sflint(90, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagTargetLocationLongitude,
			EnumName:    "KLV_0601_TARGET_LOCATION_LONGITUDE",
			Name:        "Target Location Longitude",
			Description: "Longitude of the tracked target, in degrees.",
			Format:      sflint(180, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagTargetLocationElevation,
			EnumName:    "KLV_0601_TARGET_LOCATION_ELEVATION",
			Name:        "Target Location Elevation",
			Description: "Altitude of the tracked target above mean sea level, in meters.",
			Format:      uflint(-900, 19000, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagTargetTrackGateWidth,
			EnumName:    "KLV_0601_TARGET_TRACK_GATE_WIDTH",
			Name:        "Target Track Gate Width",
			Description: "Width of the box around the tracked target, in pixels.",
			Format:      uflint(0, 510, 1),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagTargetTrackGateHeight,
			EnumName:    "KLV_0601_TARGET_TRACK_GATE_HEIGHT",
			Name:        "Target Track Gate Height",
			Description: "Height of the box around the tracked target, in pixels.",
			Format:      uflint(0, 510, 1),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagTargetErrorEstimateCE90,
			EnumName:    "KLV_0601_TARGET_ERROR_ESTIMATE_CE90",
			Name:        "Target Error Estimate - CE90",
			Description: "Radius of 90% confidence of the target location in the horizontal direction, in meters.",
			Format:      uflint(0, 4095, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagTargetErrorEstimateLE90,
			EnumName:    "KLV_0601_TARGET_ERROR_ESTIMATE_LE90",
			Name:        "Target Error Estimate - LE90",
			Description: "Radius of 90% confidence of the target location in the vertical direction, in meters.",
			Format:      uflint(0, 4095, 2),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagGenericFlagData,
			EnumName:    "KLV_0601_GENERIC_FLAG_DATA",
			Name:        "Generic Flag Data",
			Description: "Bits representing miscellaneous boolean values.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(1)},
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSecurityLocalSet,
			EnumName:    "KLV_0601_SECURITY_LOCAL_SET",
			Name:        "Security Local Set",
			Description: "Security metadata local set.",
			Format:      st0102.Format(),
			Count:       klv.CountOptional,
			Subtags:     st0102.Traits,
		},
		{
			Tag:         TagPlatformGroundSpeed,
			EnumName:    "KLV_0601_PLATFORM_GROUND_SPEED",
			Name:        "Platform Ground Speed",
			Description: "Speed of the platform projected onto the ground plane, in meters per second.",
			Format:      uflint(0, 255, 1),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagGroundRange,
			EnumName:    "KLV_0601_GROUND_RANGE",
			Name:        "Ground Range",
			Description: "Horizontal distance between the platform and the target of interest, in meters.",
			Format:      uflint(0, 5e6, 4),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagPlatformCallSign,
			EnumName:    "KLV_0601_PLATFORM_CALL_SIGN",
			Name:        "Platform Call Sign",
			Description: "Call sign of the platform or operating unit.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagVersionNumber,
			EnumName:    "KLV_0601_VERSION_NUMBER",
			Name:        "UAS Datalink LS Version Number",
			Description: "Major version of the standard used to encode the set.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(1)},
			Count:       klv.CountOne,
		},
		{
			Tag:         TagEventStartTime,
			EnumName:    "KLV_0601_EVENT_START_TIME",
			Name:        "Event Start Time",
			Description: "Start time of the mission or event, in microseconds since the epoch.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(8)},
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagVMTILocalSet,
			EnumName:    "KLV_0601_VMTI_LOCAL_SET",
			Name:        "VMTI Local Set",
			Description: "Video moving target indicator local set.",
			Format:      st0903.Format(),
			Count:       klv.CountOptional,
			Subtags:     st0903.Traits,
		},
		{
			Tag:         TagMIISCoreIdentifier,
			EnumName:    "KLV_0601_MIIS_CORE_IDENTIFIER",
			Name:        "MIIS Core Identifier",
			Description: "Binary value of the motion imagery identification system core identifier.",
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagSegmentLocalSet,
			EnumName:    "KLV_0601_SEGMENT_LOCAL_SET",
			Name:        "Segment Local Set",
			Description: "Child set producing a separate set for a segment of the motion imagery.",
			Format:      st1607.NewChildSetFormat("ST0601 segment", Traits),
			Count:       klv.CountAny,
			Subtags:     Traits,
		},
		{
			Tag:         TagAmendLocalSet,
			EnumName:    "KLV_0601_AMEND_LOCAL_SET",
			Name:        "Amend Local Set",
			Description: "Child set correcting the values of the set containing it.",
			Format:      st1607.NewChildSetFormat("ST0601 amend", Traits),
			Count:       klv.CountAny,
			Subtags:     Traits,
		},
	}
}

// Traits returns the traits of the UAS Datalink local set.
func Traits() *klv.TraitsLookup {
	traitsOnce.Do(func() {
		traits = klv.NewTraitsLookup(table())
	})
	return traits
}

// Format returns the format of the UAS Datalink local set.
// Packets end with a running sum checksum.
func Format() *klv.LocalSetFormat {
	return &klv.LocalSetFormat{
		Name:     "ST0601",
		Lookup:   Traits,
		Checksum: klv.RunningSum16Checksum(byte(TagChecksum), 2),
	}
}
