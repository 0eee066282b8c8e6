package montgomery

// Scheduling tags select between equivalent instruction schedules for the
// final reduction step of REDC. LowLatencyTag favors a short dependency
// chain, LowUopsTag favors fewer operations. The numerical result is
// identical either way; pick per call site, or ignore the tagged entry
// points entirely and get the low-latency schedule.
type (
	LowLatencyTag struct{}
	LowUopsTag    struct{}
)

// SchedulingTag is the constraint for the tagged operation entry points.
type SchedulingTag interface {
	LowLatencyTag | LowUopsTag
}

// isLowUops reports whether the tag type parameter selects the low-uops schedule.
func isLowUops[Tag SchedulingTag]() bool {
	var tag Tag
	_, ok := any(tag).(LowUopsTag)
	return ok
}

// MultiplyTagged is [Form.Multiply] with an explicit scheduling tag.
// Methods cannot have their own type parameters, hence a free function.
func MultiplyTagged[Tag SchedulingTag, T Word](mf *Form[T], x, y Value[T]) Value[T] {
	uHi, uLo := mulWide(x.val, y.val)
	if isLowUops[Tag]() {
		return Value[T]{mf.redcLowUops(uHi, uLo)}
	}
	return Value[T]{mf.redc(uHi, uLo)}
}

// FMAddTagged is [Form.FMAdd] with an explicit scheduling tag.
func FMAddTagged[Tag SchedulingTag, T Word](mf *Form[T], x, y Value[T], z FusingValue[T]) Value[T] {
	uHi, uLo := mf.fmaddPrepare(x, y, z)
	if isLowUops[Tag]() {
		return Value[T]{mf.redcLowUops(uHi, uLo)}
	}
	return Value[T]{mf.redc(uHi, uLo)}
}

// FMSubTagged is [Form.FMSub] with an explicit scheduling tag.
func FMSubTagged[Tag SchedulingTag, T Word](mf *Form[T], x, y Value[T], z FusingValue[T]) Value[T] {
	uHi, uLo := mf.fmsubPrepare(x, y, z)
	if isLowUops[Tag]() {
		return Value[T]{mf.redcLowUops(uHi, uLo)}
	}
	return Value[T]{mf.redc(uHi, uLo)}
}
