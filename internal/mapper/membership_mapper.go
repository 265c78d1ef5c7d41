package mapper

import (
	"library-membership-be/internal/entity"
	"library-membership-be/internal/model"
)

type MembershipMapper struct{}

func NewMembershipMapper() *MembershipMapper {
	return &MembershipMapper{}
}

func (m *MembershipMapper) ToEntity(r *model.LibraryMembership) *entity.LibraryMembership {
	if r == nil {
		return nil
	}
	e := &entity.LibraryMembership{
		Id:          r.Id,
		ApplicantId: r.ApplicantId,
		Application: entity.ApplicantProfile{
			Title:           r.Title,
			Initials:        r.Initials,
			FirstName:       r.FirstName,
			LastName:        r.LastName,
			FullName:        r.FullName,
			RegNo:           r.RegNo,
			MembershipType:  entity.MembershipType(r.MembershipType),
			StudentId:       r.StudentId,
			Faculty:         r.Faculty,
			Course:          r.Course,
			Level:           r.Level,
			PersonalEmail:   r.PersonalEmail,
			UniversityEmail: r.UniversityEmail,
			ContactNo:       r.ContactNo,
			PermanentAddress: entity.Address{
				Street: r.AddressStreet,
				City:   r.AddressCity,
				State:  r.AddressState,
				Zip:    r.AddressZip,
			},
			NicNo:         r.NicNo,
			DateOfBirth:   r.DateOfBirth,
			ProfilePicURL: r.ProfilePicURL,
		},
		State:             entity.ApplicationState(r.State),
		PaymentStatus:     entity.PaymentStatus(r.PaymentStatus),
		MembershipStatus:  entity.MembershipStatus(r.MembershipStatus),
		StatusUpdatedBy:   r.StatusUpdatedBy,
		StatusUpdatedDate: r.StatusUpdatedDate,
		Version:           r.Version,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}

	if r.PaymentAmount != nil {
		pd := &entity.PaymentDetails{
			Amount:         *r.PaymentAmount,
			GatewayOrderId: r.GatewayOrderId,
		}
		if r.PaymentMethod != nil {
			pd.Method = entity.PaymentMethod(*r.PaymentMethod)
		}
		if r.PaymentReference != nil {
			pd.ReferenceNumber = *r.PaymentReference
		}
		if r.PaymentConfirmedBy != nil {
			pd.ConfirmedBy = *r.PaymentConfirmedBy
		}
		if r.PaymentDate != nil {
			pd.PaymentDate = *r.PaymentDate
		}
		if r.PaymentConfirmedAt != nil {
			pd.ConfirmedDate = *r.PaymentConfirmedAt
		}
		e.PaymentDetails = pd
	}

	if r.MembershipNumber != nil {
		md := &entity.MembershipDetails{
			MembershipNumber: *r.MembershipNumber,
		}
		if r.MembershipStartDate != nil {
			md.StartDate = *r.MembershipStartDate
		}
		if r.MembershipEndDate != nil {
			md.EndDate = *r.MembershipEndDate
		}
		if r.MembershipCreatedBy != nil {
			md.CreatedBy = *r.MembershipCreatedBy
		}
		if r.MembershipCreatedAt != nil {
			md.CreatedDate = *r.MembershipCreatedAt
		}
		e.MembershipDetails = md
	}

	return e
}

func (m *MembershipMapper) ToModel(e *entity.LibraryMembership) *model.LibraryMembership {
	if e == nil {
		return nil
	}
	r := &model.LibraryMembership{
		Id:          e.Id,
		ApplicantId: e.ApplicantId,

		Title:           e.Application.Title,
		Initials:        e.Application.Initials,
		FirstName:       e.Application.FirstName,
		LastName:        e.Application.LastName,
		FullName:        e.Application.FullName,
		RegNo:           e.Application.RegNo,
		MembershipType:  string(e.Application.MembershipType),
		StudentId:       e.Application.StudentId,
		Faculty:         e.Application.Faculty,
		Course:          e.Application.Course,
		Level:           e.Application.Level,
		PersonalEmail:   e.Application.PersonalEmail,
		UniversityEmail: e.Application.UniversityEmail,
		ContactNo:       e.Application.ContactNo,
		AddressStreet:   e.Application.PermanentAddress.Street,
		AddressCity:     e.Application.PermanentAddress.City,
		AddressState:    e.Application.PermanentAddress.State,
		AddressZip:      e.Application.PermanentAddress.Zip,
		NicNo:           e.Application.NicNo,
		DateOfBirth:     e.Application.DateOfBirth,
		ProfilePicURL:   e.Application.ProfilePicURL,

		State:             string(e.State),
		PaymentStatus:     string(e.PaymentStatus),
		MembershipStatus:  string(e.MembershipStatus),
		StatusUpdatedBy:   e.StatusUpdatedBy,
		StatusUpdatedDate: e.StatusUpdatedDate,
		Version:           e.Version,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}

	if pd := e.PaymentDetails; pd != nil {
		amount := pd.Amount
		method := string(pd.Method)
		ref := pd.ReferenceNumber
		confirmedBy := pd.ConfirmedBy
		payDate := pd.PaymentDate
		confirmedAt := pd.ConfirmedDate

		r.PaymentAmount = &amount
		r.PaymentMethod = &method
		r.PaymentReference = &ref
		r.GatewayOrderId = pd.GatewayOrderId
		r.PaymentConfirmedBy = &confirmedBy
		r.PaymentDate = &payDate
		r.PaymentConfirmedAt = &confirmedAt
	}

	if md := e.MembershipDetails; md != nil {
		number := md.MembershipNumber
		start := md.StartDate
		end := md.EndDate
		createdBy := md.CreatedBy
		createdAt := md.CreatedDate

		r.MembershipNumber = &number
		r.MembershipStartDate = &start
		r.MembershipEndDate = &end
		r.MembershipCreatedBy = &createdBy
		r.MembershipCreatedAt = &createdAt
	}

	return r
}
