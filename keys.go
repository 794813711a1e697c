package prefs

// Key identifies one editable preference. The set is closed; names that are
// not part of it resolve to KeyUndefined.
type Key int

const (
	// KeyUndefined is returned by Resolve for names outside the editable set.
	KeyUndefined Key = iota
	KeyJPEGImageQuality
	KeyColorTransparencyCompartment
	KeyColorGradientAttenuationCompartment
	KeyColorGradientAttenuationSlicer
	KeySpecularWhiteAttenuationSlicer
	KeyColorShapeAttenuationCompartment
	KeyCompartmentBodyChangeResponseFactor
	KeyMaxSelectedMoleculeNumberSlicer
	KeyDepthAttenuationSlicer
	KeyShiftsSlicer
	KeyCustomDialogSize
	KeyRotationAngles
	KeyParticleShifts
	KeyStepInfoArraySlicer
	KeyRadialGradientPaintRadiusMagnification
	KeySpecularWhiteSizeSlicer
	KeyRadialGradientPaintFocusFactors
	KeyDelayForFilesInMilliseconds
	KeyDelayForJobStartInMilliseconds
	KeyInternalMFsimJobPath
	KeyInternalTempPath
	KeyCurrentParticleSetFilename
	KeyFirstSliceIndex
	KeyNumberOfZoomVolumeBins
	KeyNumberOfFramePointsSlicer
	KeyTimeStepDisplaySlicer
	KeyIsJobResultArchiveStepFileInclusion
	KeyIsVolumeScalingForConcentrationCalculation
	KeyIsJobInputInclusion
	KeyIsParticleDistricutionInclusion
	KeyIsSimulationStepInclusion
	KeyIsNearestNeighborEvaluationInclusion
	KeyIsJobResultArchiveProcessParallelInBackground
	KeyIsJobResultArchiveFileUncompressed
	KeyIsJdpdKernelDoublePrecision
	KeyIsJdpdLogLevelException
	KeyIsConstantCompartmentBodyVolume
	KeyIsSimulationBoxSlicer
	KeyIsMoleculeDisplayWithStandardParticleSize
	KeyIsSingleSliceDisplay
	KeySlicerGraphicsMode
	KeySimulationBoxBackgroundColorSlicer
	KeyMeasurementColorSlicer
	KeyMoleculeSelectionColorSlicer
	KeyFrameColorSlicer
	KeyJmolSimulationBoxBackgroundColor
	KeyProteinViewerBackgroundColor
	KeyImageStorageMode
	KeyParticleColorDisplayMode
	KeyBoxViewDisplay
	KeyIsFrameDisplaySlicer
	KeyJobInputFilterAfterTimestamp
	KeyJobInputFilterBeforeTimestamp
	KeyJobInputFilterContainsPhrase
	KeyJobResultFilterAfterTimestamp
	KeyJobResultFilterBeforeTimestamp
	KeyJobResultFilterContainsPhrase
	KeyNumberOfSlices
	KeyJmolShadePower
	KeyJmolAmbientLightPercentage
	KeyJmolDiffuseLightPercentage
	KeyJmolSpecularReflectionExponent
	KeyJmolSpecularReflectionPercentage
	KeyJmolSpecularReflectionPower
	KeyNumberOfParallelSimulations
	KeyNumberOfParallelSlicers
	KeyNumberOfParallelCalculators
	KeyNumberOfParallelParticlePositionWriters
	KeyNumberOfAfterDecimalSeparatorDigitsForParticlePositions
	KeyMaximumNumberOfPositionCorrectionTrials
	KeyMovieQuality
	KeyTimerIntervallInMilliseconds
	KeyMinimumBondLengthDPD
	KeyMaximumNumberOfParticlesForGraphicalDisplay
	KeyNumberOfStepsForRDFCalculation
	KeyNumberOfTrialsForCompartment
	KeyAnimationSpeed
	KeyNumberOfSimulationBoxCellsForParallelization
	KeyNumberOfBondsForParallelization
	KeyNumberOfStepsForJobRestart
	KeySimulationBoxMagnificationPercentage
	KeyNumberOfSpinSteps
	KeySimulationMovieImagePath
	KeyChartMovieImagePath

	keyCount
)

const undefinedKeyName = "UNDEFINED"

// keyNames holds the persisted names. They are written to preference files by
// earlier sessions and must stay byte-for-byte stable.
var keyNames = [keyCount]string{
	KeyUndefined:                                               "UNDEFINED",
	KeyJPEGImageQuality:                                        "JPEG_IMAGE_QUALITY",
	KeyColorTransparencyCompartment:                            "COLOR_TRANSPARENCY_COMPARTMENT",
	KeyColorGradientAttenuationCompartment:                     "COLOR_GRADIENT_ATTENUATION_COMPARTMENT",
	KeyColorGradientAttenuationSlicer:                          "COLOR_GRADIENT_ATTENUATION_SLICER",
	KeySpecularWhiteAttenuationSlicer:                          "SPECULAR_WHITE_ATTENUATION_SLICER",
	KeyColorShapeAttenuationCompartment:                        "COLOR_SHAPE_ATTENUATION_COMPARTMENT",
	KeyCompartmentBodyChangeResponseFactor:                     "COMPARTMENT_BODY_CHANGE_RESPONSE_FACTOR",
	KeyMaxSelectedMoleculeNumberSlicer:                         "MAX_SELECTED_MOLECULE_NUMBER_SLICER",
	KeyDepthAttenuationSlicer:                                  "DEPTH_ATTENUATION_SLICER",
	KeyShiftsSlicer:                                            "SHIFTS_SLICER",
	KeyCustomDialogSize:                                        "CUSTOM_DIALOG_SIZE",
	KeyRotationAngles:                                          "ROTATION_ANGLES",
	KeyParticleShifts:                                          "PARTICLE_SHIFTS",
	KeyStepInfoArraySlicer:                                     "STEP_INFO_ARRAY_SLICER",
	KeyRadialGradientPaintRadiusMagnification:                  "RADIAL_GRADIENT_PAINT_RADIUS_MAGNIFICATION",
	KeySpecularWhiteSizeSlicer:                                 "SPECULAR_WHITE_SIZE_SLICER",
	KeyRadialGradientPaintFocusFactors:                         "RADIAL_GRADIENT_PAINT_FOCUS_FACTORS",
	KeyDelayForFilesInMilliseconds:                             "DELAY_FOR_FILES_IN_MILLISECONDS",
	KeyDelayForJobStartInMilliseconds:                          "DELAY_FOR_JOB_START_IN_MILLISECONDS",
	KeyInternalMFsimJobPath:                                    "INTERNAL_MFSIM_JOB_PATH",
	KeyInternalTempPath:                                        "INTERNAL_TEMP_PATH",
	KeyCurrentParticleSetFilename:                              "CURRENT_PARTICLE_SET_FILENAME",
	KeyFirstSliceIndex:                                         "FIRST_SLICE_INDEX",
	KeyNumberOfZoomVolumeBins:                                  "NUMBER_OF_ZOOM_VOLUME_BINS",
	KeyNumberOfFramePointsSlicer:                               "NUMBER_OF_FRAME_POINTS_SLICER",
	KeyTimeStepDisplaySlicer:                                   "TIME_STEP_DISPLAY_SLICER",
	KeyIsJobResultArchiveStepFileInclusion:                     "IS_JOB_RESULT_ARCHIVE_STEP_FILE_INCLUSION",
	KeyIsVolumeScalingForConcentrationCalculation:              "IS_VOLUME_SCALING_FOR_CONCENTRATION_CALCULATION",
	KeyIsJobInputInclusion:                                     "IS_JOB_INPUT_INCLUSION",
	KeyIsParticleDistricutionInclusion:                         "IS_PARTICLE_DISTRICUTION_INCLUSION",
	KeyIsSimulationStepInclusion:                               "IS_SIMULATION_STEP_INCLUSION",
	KeyIsNearestNeighborEvaluationInclusion:                    "IS_NEAREST_NEIGHBOR_EVALUATION_INCLUSION",
	KeyIsJobResultArchiveProcessParallelInBackground:           "IS_JOB_RESULT_ARCHIVE_PROCESS_PARALLEL_IN_BACKGROUND",
	KeyIsJobResultArchiveFileUncompressed:                      "IS_JOB_RESULT_ARCHIVE_FILE_UNCOMPRESSED",
	KeyIsJdpdKernelDoublePrecision:                             "IS_JDPD_KERNEL_DOUBLE_PRECISION",
	KeyIsJdpdLogLevelException:                                 "IS_JDPD_LOG_LEVEL_EXCEPTION",
	KeyIsConstantCompartmentBodyVolume:                         "IS_CONSTANT_COMPARTMENT_BODY_VOLUME",
	KeyIsSimulationBoxSlicer:                                   "IS_SIMULATION_BOX_SLICER",
	KeyIsMoleculeDisplayWithStandardParticleSize:               "IS_MOLECULE_DISPLAY_WITH_STANDARD_PARTICLE_SIZE",
	KeyIsSingleSliceDisplay:                                    "IS_SINGLE_SLICE_DISPLAY",
	KeySlicerGraphicsMode:                                      "SLICER_GRAPHICS_MODE",
	KeySimulationBoxBackgroundColorSlicer:                      "SIMULATION_BOX_BACKGROUND_COLOR_SLICER",
	KeyMeasurementColorSlicer:                                  "MEASUREMENT_COLOR_SLICER",
	KeyMoleculeSelectionColorSlicer:                            "MOLECULE_SELECTION_COLOR_SLICER",
	KeyFrameColorSlicer:                                        "FRAME_COLOR_SLICER",
	KeyJmolSimulationBoxBackgroundColor:                        "JMOL_SIMULATION_BOX_BACKGROUND_COLOR",
	KeyProteinViewerBackgroundColor:                            "PROTEIN_VIEWER_BACKGROUND_COLOR",
	KeyImageStorageMode:                                        "IMAGE_STORAGE_MODE",
	KeyParticleColorDisplayMode:                                "PARTICLE_COLOR_DISPLAY_MODE",
	KeyBoxViewDisplay:                                          "BOX_VIEW_DISPLAY",
	KeyIsFrameDisplaySlicer:                                    "IS_FRAME_DISPLAY_SLICER",
	KeyJobInputFilterAfterTimestamp:                            "JOB_INPUT_FILTER_AFTER_TIMESTAMP",
	KeyJobInputFilterBeforeTimestamp:                           "JOB_INPUT_FILTER_BEFORE_TIMESTAMP",
	KeyJobInputFilterContainsPhrase:                            "JOB_INPUT_FILTER_CONTAINS_PHRASE",
	KeyJobResultFilterAfterTimestamp:                           "JOB_RESULT_FILTER_AFTER_TIMESTAMP",
	KeyJobResultFilterBeforeTimestamp:                          "JOB_RESULT_FILTER_BEFORE_TIMESTAMP",
	KeyJobResultFilterContainsPhrase:                           "JOB_RESULT_FILTER_CONTAINS_PHRASE",
	KeyNumberOfSlices:                                          "NUMBER_OF_SLICES",
	KeyJmolShadePower:                                          "JMOL_SHADE_POWER",
	KeyJmolAmbientLightPercentage:                              "JMOL_AMBIENT_LIGHT_PERCENTAGE",
	KeyJmolDiffuseLightPercentage:                              "JMOL_DIFFUSE_LIGHT_PERCENTAGE",
	KeyJmolSpecularReflectionExponent:                          "JMOL_SPECULAR_REFLECTION_EXPONENT",
	KeyJmolSpecularReflectionPercentage:                        "JMOL_SPECULAR_REFLECTION_PERCENTAGE",
	KeyJmolSpecularReflectionPower:                             "JMOL_SPECULAR_REFLECTION_POWER",
	KeyNumberOfParallelSimulations:                             "NUMBER_OF_PARALLEL_SIMULATIONS",
	KeyNumberOfParallelSlicers:                                 "NUMBER_OF_PARALLEL_SLICERS",
	KeyNumberOfParallelCalculators:                             "NUMBER_OF_PARALLEL_CALCULATORS",
	KeyNumberOfParallelParticlePositionWriters:                 "NUMBER_OF_PARALLEL_PARTICLE_POSITION_WRITERS",
	KeyNumberOfAfterDecimalSeparatorDigitsForParticlePositions: "NUMBER_OF_AFTER_DECIMAL_SEPARATOR_DIGITS_FOR_PARTICLE_POSITIONS",
	KeyMaximumNumberOfPositionCorrectionTrials:                 "MAXIMUM_NUMBER_OF_POSITION_CORRECTION_TRIALS",
	KeyMovieQuality:                                            "MOVIE_QUALITY",
	KeyTimerIntervallInMilliseconds:                            "TIMER_INTERVALL_IN_MILLISECONDS",
	KeyMinimumBondLengthDPD:                                    "MINIMUM_BOND_LENGTH_DPD",
	KeyMaximumNumberOfParticlesForGraphicalDisplay:             "MAXIMUM_NUMBER_OF_PARTICLES_FOR_GRAPHICAL_DISPLAY",
	KeyNumberOfStepsForRDFCalculation:                          "NUMBER_OF_STEPS_FOR_RDF_CALCULATION",
	KeyNumberOfTrialsForCompartment:                            "NUMBER_OF_TRIALS_FOR_COMPARTMENT",
	KeyAnimationSpeed:                                          "ANIMATION_SPEED",
	KeyNumberOfSimulationBoxCellsForParallelization:            "NUMBER_OF_SIMULATION_BOX_CELLS_FOR_PARALLELIZATION",
	KeyNumberOfBondsForParallelization:                         "NUMBER_OF_BONDS_FOR_PARALLELIZATION",
	KeyNumberOfStepsForJobRestart:                              "NUMBER_OF_STEPS_FOR_JOB_RESTART",
	KeySimulationBoxMagnificationPercentage:                    "SIMULATION_BOX_MAGNIFICATION_PERCENTAGE",
	KeyNumberOfSpinSteps:                                       "NUMBER_OF_SPIN_STEPS",
	KeySimulationMovieImagePath:                                "SIMULATION_MOVIE_IMAGE_PATH",
	KeyChartMovieImagePath:                                     "CHART_MOVIE_IMAGE_PATH",
}

// keysByName is built once at package initialization and never written again,
// so concurrent Resolve calls need no locking.
var keysByName = func() map[string]Key {
	index := make(map[string]Key, keyCount-1)
	for key := KeyUndefined + 1; key < keyCount; key++ {
		index[keyNames[key]] = key
	}
	return index
}()

// Resolve returns the Key registered under name. Unknown names, including
// names that only differ in case or surrounding whitespace, resolve to
// KeyUndefined.
func Resolve(name string) Key {
	if key, ok := keysByName[name]; ok {
		return key
	}
	return KeyUndefined
}

// String returns the persisted name of the key.
func (k Key) String() string {
	if k <= KeyUndefined || k >= keyCount {
		return undefinedKeyName
	}
	return keyNames[k]
}

// Defined reports whether k is a member of the editable set.
func (k Key) Defined() bool {
	return k > KeyUndefined && k < keyCount
}

// Keys returns every defined key in declaration order.
func Keys() []Key {
	out := make([]Key, 0, keyCount-1)
	for key := KeyUndefined + 1; key < keyCount; key++ {
		out = append(out, key)
	}
	return out
}
