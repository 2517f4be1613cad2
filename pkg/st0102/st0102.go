// Package st0102 contains the security metadata local and universal sets.
//
// Specification: MISB ST0102
package st0102

import (
	"sync"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/klvlength"
)

// Key is the universal key of the security local set.
var Key = klv.MustParseUDSKey("060E2B34020301010E01030302000000")

// UniversalKey is the universal key of the security universal set.
var UniversalKey = klv.MustParseUDSKey("060E2B34020101010208020000000000")

// tags.
const (
	TagSecurityClassification               klv.Tag = 1
	TagCountryCodingMethod                  klv.Tag = 2
	TagClassifyingCountry                   klv.Tag = 3
	TagSCISHIInformation                    klv.Tag = 4
	TagCaveats                              klv.Tag = 5
	TagReleasingInstructions                klv.Tag = 6
	TagClassifiedBy                         klv.Tag = 7
	TagDerivedFrom                          klv.Tag = 8
	TagClassificationReason                 klv.Tag = 9
	TagDeclassificationDate                 klv.Tag = 10
	TagClassificationAndMarkingSystem       klv.Tag = 11
	TagObjectCountryCodingMethod            klv.Tag = 12
	TagObjectCountryCodes                   klv.Tag = 13
	TagClassificationComments               klv.Tag = 14
	TagVersion                              klv.Tag = 22
	TagCountryCodingMethodVersionDate       klv.Tag = 23
	TagObjectCountryCodingMethodVersionDate klv.Tag = 24
)

// Classification is a security classification.
type Classification uint64

// classifications.
const (
	ClassificationUnclassified Classification = 1
	ClassificationRestricted   Classification = 2
	ClassificationConfidential Classification = 3
	ClassificationSecret       Classification = 4
	ClassificationTopSecret    Classification = 5
)

// String implements fmt.Stringer.
func (c Classification) String() string {
	switch c {
	case ClassificationUnclassified:
		return "UNCLASSIFIED"
	case ClassificationRestricted:
		return "RESTRICTED"
	case ClassificationConfidential:
		return "CONFIDENTIAL"
	case ClassificationSecret:
		return "SECRET"
	case ClassificationTopSecret:
		return "TOP SECRET"
	}
	return "unknown"
}

func str() klv.Format {
	return &klv.StringFormat{Codec: klvcodec.ASCII}
}

var (
	traitsOnce      sync.Once
	traits          *klv.TraitsLookup
	universalTraits *klv.TraitsLookup
)

func table() []klv.TagTraits {
	return []klv.TagTraits{
		{
			EnumName: "KLV_0102_UNKNOWN",
			Name:     "Unknown Tag",
		},
		{
			Tag:         TagSecurityClassification,
			UDSKey:      klv.MustParseUDSKey("060E2B34010101030208020100000000"),
			EnumName:    "KLV_0102_SECURITY_CLASSIFICATION",
			Name:        "Security Classification",
			Description: "Overall security classification of the motion imagery.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(1)},
			Count:       klv.CountOne,
		},
		{
			Tag:         TagCountryCodingMethod,
			UDSKey:      klv.MustParseUDSKey("060E2B34010101030701200102070000"),
			EnumName:    "KLV_0102_COUNTRY_CODING_METHOD",
			Name:        "Country Coding Method",
			Description: "Method used to identify countries in the classifying country and releasing instructions.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(1)},
			Count:       klv.CountOne,
		},
		{
			Tag:         TagClassifyingCountry,
			UDSKey:      klv.MustParseUDSKey("060E2B34010101030701200102080000"),
			EnumName:    "KLV_0102_CLASSIFYING_COUNTRY",
			Name:        "Classifying Country",
			Description: "Country providing the security classification, preceded by '//'.",
			Format:      &klv.StringFormat{Codec: klvcodec.ASCII, Length: klvlength.MustInterval(1, 6)},
			Count:       klv.CountOne,
		},
		{
			Tag:         TagSCISHIInformation,
			UDSKey:      klv.MustParseUDSKey("060E2B34010101030701200102090000"),
			EnumName:    "KLV_0102_SCI_SHI_INFORMATION",
			Name:        "SCI / SHI Information",
			Description: "Sensitive compartmented information or special handling instructions.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagCaveats,
			UDSKey:      klv.MustParseUDSKey("060E2B34010101030208020200000000"),
			EnumName:    "KLV_0102_CAVEATS",
			Name:        "Caveats",
			Description: "Pertinent caveats or code words.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagReleasingInstructions,
			UDSKey:      klv.MustParseUDSKey("060E2B340101010307012001020A0000"),
			EnumName:    "KLV_0102_RELEASING_INSTRUCTIONS",
			Name:        "Releasing Instructions",
			Description: "Countries to which the motion imagery is releasable.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagClassifiedBy,
			EnumName:    "KLV_0102_CLASSIFIED_BY",
			Name:        "Classified By",
			Description: "Name and type of authority used to classify the motion imagery.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagDerivedFrom,
			EnumName:    "KLV_0102_DERIVED_FROM",
			Name:        "Derived From",
			Description: "Original source of the classified data.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagClassificationReason,
			EnumName:    "KLV_0102_CLASSIFICATION_REASON",
			Name:        "Classification Reason",
			Description: "Reason for the classification, or citation of a document.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagDeclassificationDate,
			EnumName:    "KLV_0102_DECLASSIFICATION_DATE",
			Name:        "Declassification Date",
			Description: "Date when the classified material may be automatically declassified, as YYYYMMDD.",
			Format:      &klv.StringFormat{Codec: klvcodec.ASCII, Length: klvlength.MustFixed(8)},
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagClassificationAndMarkingSystem,
			EnumName:    "KLV_0102_CLASSIFICATION_AND_MARKING_SYSTEM",
			Name:        "Classification and Marking System",
			Description: "Classification or marking system used in this set.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagObjectCountryCodingMethod,
			EnumName:    "KLV_0102_OBJECT_COUNTRY_CODING_METHOD",
			Name:        "Object Country Coding Method",
			Description: "Method used to identify the countries which are the object of the motion imagery.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(1)},
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagObjectCountryCodes,
			EnumName:    "KLV_0102_OBJECT_COUNTRY_CODES",
			Name:        "Object Country Codes",
			Description: "Countries which are the object of the motion imagery.",
			Format:      &klv.StringFormat{Codec: klvcodec.UTF16BE},
			Count:       klv.CountOne,
		},
		{
			Tag:         TagClassificationComments,
			EnumName:    "KLV_0102_CLASSIFICATION_COMMENTS",
			Name:        "Classification Comments",
			Description: "Security related comments and format changes.",
			Format:      str(),
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagVersion,
			EnumName:    "KLV_0102_VERSION",
			Name:        "Version",
			Description: "Version number of the security metadata standard.",
			Format:      &klv.UintFormat{Length: klvlength.MustFixed(2)},
			Count:       klv.CountOne,
		},
		{
			Tag:         TagCountryCodingMethodVersionDate,
			EnumName:    "KLV_0102_COUNTRY_CODING_METHOD_VERSION_DATE",
			Name:        "Country Coding Method Version Date",
			Description: "Effective date of the country coding method, as YYYY-MM-DD.",
			Format:      &klv.StringFormat{Codec: klvcodec.ASCII, Length: klvlength.MustFixed(10)},
			Count:       klv.CountOptional,
		},
		{
			Tag:         TagObjectCountryCodingMethodVersionDate,
			EnumName:    "KLV_0102_OBJECT_COUNTRY_CODING_METHOD_VERSION_DATE",
			Name:        "Object Country Coding Method Version Date",
			Description: "Effective date of the object country coding method, as YYYY-MM-DD.",
			Format:      &klv.StringFormat{Codec: klvcodec.ASCII, Length: klvlength.MustFixed(10)},
			Count:       klv.CountOptional,
		},
	}
}

// Traits returns the traits of the security local set.
func Traits() *klv.TraitsLookup {
	load()
	return traits
}

// UniversalTraits returns the traits of the tags that have a universal key,
// which are the ones that can appear in the security universal set.
func UniversalTraits() *klv.TraitsLookup {
	load()
	return universalTraits
}

func load() {
	traitsOnce.Do(func() {
		t := table()
		traits = klv.NewTraitsLookup(t)

		u := []klv.TagTraits{t[0]}
		for _, e := range t[1:] {
			if e.UDSKey != (klv.UDSKey{}) {
				e.Count.Min = 0
				u = append(u, e)
			}
		}
		universalTraits = klv.NewTraitsLookup(u)
	})
}

// Format returns the format of the security local set.
func Format() *klv.LocalSetFormat {
	return &klv.LocalSetFormat{
		Name:   "ST0102",
		Lookup: Traits,
	}
}

// UniversalFormat returns the format of the security universal set.
func UniversalFormat() *klv.UniversalSetFormat {
	return &klv.UniversalSetFormat{
		Name:   "ST0102",
		Lookup: UniversalTraits,
	}
}
