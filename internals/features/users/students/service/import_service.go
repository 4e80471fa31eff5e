// file: internals/features/users/students/service/import_service.go
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/xuri/excelize/v2"

	"msns_backend/internals/features/users/students/dto"
	"msns_backend/internals/rpc"
)

// Import reads the first sheet of an xlsx workbook. The header row names
// the json fields of the student schema; every following row is validated
// and created on its own, so one bad row does not stop the rest.
func (s *Service) Import(ctx context.Context, in dto.ImportStudentsInput) (dto.ImportResult, error) {
	res := dto.ImportResult{Failed: []dto.ImportFailure{}}

	raw, err := base64.StdEncoding.DecodeString(in.FileBase64)
	if err != nil {
		return res, rpc.BadRequest("Invalid file encoding")
	}
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return res, rpc.BadRequest("File is not a valid xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return res, rpc.BadRequest("Workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return res, rpc.Internal("Failed to read workbook", err)
	}
	if len(rows) < 2 {
		return res, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}
		in, fields := s.decodeRow(header, row)
		if fields != nil {
			res.Failed = append(res.Failed, dto.ImportFailure{Row: rowNum, Errors: fields})
			continue
		}
		if _, err := s.create(ctx, in); err != nil {
			res.Failed = append(res.Failed, dto.ImportFailure{
				Row:    rowNum,
				Errors: map[string][]string{"_": {"Failed to create student"}},
			})
			continue
		}
		res.Created++
	}
	return res, nil
}

func (s *Service) decodeRow(header, row []string) (dto.CreateStudentInput, map[string][]string) {
	var in dto.CreateStudentInput
	obj := make(map[string]string, len(header))
	for i, name := range header {
		if name == "" || i >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			obj[name] = v
		}
	}
	buf, err := sonic.Marshal(obj)
	if err == nil {
		err = sonic.Unmarshal(buf, &in)
	}
	if err != nil {
		return in, map[string][]string{"_": {"Row could not be decoded"}}
	}
	in.Defaults()
	if fields := s.validator.Struct(&in); fields != nil {
		return in, fields
	}
	return in, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
