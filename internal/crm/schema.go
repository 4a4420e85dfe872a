package crm

// Canonical column names, after header normalization.
const (
	ColRegarding = "Regarding"

	ColSubMarket         = "Sub-Market"
	ColDealStage         = "Calculated Deal Stage"
	ColGFSubmittal       = "GF Submittal Date"
	ColGFMeeting         = "Green Folder Meeting Date"
	ColIPExpiration      = "IP Expiration Date"
	ColDaysToIPExp       = "Days to IP Expiration"
	ColProjectedClosing  = "Projected Deal First Closing Date"
	ColHomesiteTotal     = "Deal Homesite Total"
	ColHomesiteSize      = "Homesite Size Description"
	ColAcquisitionType   = "Acquisition Type"
	ColPrimarySeller     = "Primary Seller Company"
	ColProductType       = "Product Type Description"
	ColFinalApproval     = "CIC Final Approval Date"
	ColContractExecution = "Actual Contract Execution Date"

	ColTaskCategory   = "Task Category"
	ColOwner          = "Owner"
	ColSubject        = "Subject"
	ColStartDate      = "Start Date"
	ColDueDate        = "Due Date"
	ColVendorAssigned = "Vendor Assigned"
	ColPriority       = "Priority"
	ColComment        = "Comment"
	ColStatusReason   = "Status Reason"
	ColActualEnd      = "Actual End"
	ColModifiedOn     = "Modified On"

	ColStatus      = "Status"
	ColStartTime   = "Start Time"
	ColEndTime     = "End Time"
	ColCategory    = "Category"
	ColDescription = "Description"
)

// DealColumns is the maximum deal schema, in display order.
var DealColumns = []string{
	ColRegarding, ColSubMarket, ColDealStage,
	ColGFSubmittal, ColGFMeeting,
	ColIPExpiration, ColDaysToIPExp,
	ColProjectedClosing, ColHomesiteTotal,
	ColHomesiteSize, ColAcquisitionType,
	ColPrimarySeller, ColProductType,
	ColFinalApproval, ColContractExecution,
}

// TaskColumns is the maximum task schema, in display order. The deal identifier is not included.
var TaskColumns = []string{
	ColTaskCategory, ColOwner, ColSubject,
	ColStartDate, ColDueDate,
	ColVendorAssigned, ColPriority, ColComment,
	ColStatusReason, ColActualEnd, ColModifiedOn,
}

// AppointmentColumns are the appointment fields with a typed home on Appointment.
// Any other non-system column of the appointments table is carried as an extra.
var AppointmentColumns = []string{
	ColSubject, ColRegarding, ColOwner, ColStatus,
	ColStartTime, ColEndTime, ColCategory, ColDescription,
}

// AppointmentSystemColumns are dropped from appointments when present.
var AppointmentSystemColumns = []string{"Appointment", "Row Checksum", ColModifiedOn}

// AppointmentMarkers identify the appointments table among the uploads.
var AppointmentMarkers = []string{ColSubject, ColStartTime}

// DealDateColumns are the date-typed deal columns.
var DealDateColumns = map[string]bool{
	ColGFSubmittal: true, ColGFMeeting: true, ColIPExpiration: true,
	ColProjectedClosing: true, ColFinalApproval: true, ColContractExecution: true,
}
